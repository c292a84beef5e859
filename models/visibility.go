package models

// VisibilityScope - предикат видимости записей для пользователя.
// Для одних и тех же настроек и назначений всегда получается один и тот же предикат.
type VisibilityScope struct {
	Unrestricted bool
	OwnerID      string   // submitted_by/user_id = OwnerID
	ProjectIDs   []string // или project_id IN (ProjectIDs)
}

func ScopeUnrestricted() VisibilityScope {
	return VisibilityScope{Unrestricted: true}
}

func ScopeOwnOnly(userID string) VisibilityScope {
	return VisibilityScope{OwnerID: userID}
}

func ScopeAssignedProjects(userID string, projectIDs []string) VisibilityScope {
	return VisibilityScope{OwnerID: userID, ProjectIDs: projectIDs}
}
