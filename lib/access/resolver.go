package accessresolver

import (
	log "github.com/sirupsen/logrus"

	"stroy-tools-backend/db"
	companysettingshandler "stroy-tools-backend/lib/company-settings"
	usersstore "stroy-tools-backend/lib/company/users/store"
	assignmentstore "stroy-tools-backend/lib/project/assignment-store"
	projectstore "stroy-tools-backend/lib/project/store"
	"stroy-tools-backend/models"
)

// Provider вычисляет уровень доступа пользователя к области и предикат видимости записей.
// Чистое чтение, без побочных эффектов. При отсутствии пользователя или проекта
// доступ закрывается (none), ошибка наружу не отдаётся.
type Provider interface {
	ResolveAccess(companyID, userID, projectID string, tool models.Tool) models.Access
	DailyLogScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error)
	TimeEntryScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore:      usersstore.NewInstance(db.DB),
		projectStore:    projectstore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
		settings:        companysettingshandler.Instance,
	}
}

type impl struct {
	usersStore      usersstore.Provider
	projectStore    projectstore.Provider
	assignmentStore assignmentstore.Provider
	settings        companysettingshandler.Provider
}

var noAccess = models.Access{Level: models.AccessLevelNone}

func (i impl) ResolveAccess(companyID, userID, projectID string, tool models.Tool) models.Access {
	logger := log.
		WithField("company_id", companyID).
		WithField("user_id", userID).
		WithField("tool", tool)
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя при проверке доступа")
		return noAccess
	}
	if user == nil || user.CompanyID != companyID || !user.IsActive() {
		return noAccess
	}
	if user.Role.IsOwnerAdmin() {
		return models.Access{IsOwnerAdmin: true, Level: models.AccessLevelAdmin}
	}

	level := models.DefaultToolAccess(user.Role, tool)
	settings, err := i.settings.Get(companyID)
	if err == nil {
		if override, exist := settings.ToolOverride(user.Role, tool); exist {
			level = override
		}
	} else {
		logger.WithError(err).Error("ошибка получения настроек при проверке доступа, используются уровни по умолчанию")
	}
	if level == models.AccessLevelNone {
		return noAccess
	}

	if projectID != "" {
		project, err := i.projectStore.GetByID(companyID, projectID)
		if err != nil {
			logger.WithError(err).Error("ошибка получения проекта при проверке доступа")
			return noAccess
		}
		if project == nil {
			return noAccess
		}
		// уровень member действует только на назначенных проектах
		if !level.IsAdmin() {
			assignment, err := i.assignmentStore.Get(companyID, projectID, userID)
			if err != nil {
				logger.WithError(err).Error("ошибка получения назначения при проверке доступа")
				return noAccess
			}
			if assignment == nil {
				return noAccess
			}
		}
	}
	return models.Access{Level: level}
}

func (i impl) DailyLogScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error) {
	access := i.ResolveAccess(companyID, userID, "", models.DailyLogsTool)
	if access.HasAdminLevel() {
		return models.ScopeUnrestricted(), nil
	}
	settings, err := i.settings.Get(companyID)
	if err != nil {
		return models.VisibilityScope{}, err
	}
	return i.scopeByPolicy(settings.PolicyForRole(role), companyID, userID)
}

func (i impl) TimeEntryScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error) {
	access := i.ResolveAccess(companyID, userID, "", models.TimeTrackingTool)
	if access.HasAdminLevel() {
		return models.ScopeUnrestricted(), nil
	}
	settings, err := i.settings.Get(companyID)
	if err != nil {
		return models.VisibilityScope{}, err
	}
	return i.scopeByPolicy(settings.TimeEntryPolicyForRole(role), companyID, userID)
}

func (i impl) scopeByPolicy(policy models.DataAccessPolicy, companyID, userID string) (models.VisibilityScope, error) {
	switch policy {
	case models.DataAccessAll:
		return models.ScopeUnrestricted(), nil
	case models.DataAccessOwnOnly:
		return models.ScopeOwnOnly(userID), nil
	default: // ASSIGNED_PROJECTS
		projectIds, err := i.assignmentStore.GetProjectIds(companyID, userID)
		if err != nil {
			return models.VisibilityScope{}, err
		}
		return models.ScopeAssignedProjects(userID, projectIds), nil
	}
}
