package models

// Tool - функциональная область, к которой вычисляется уровень доступа
type Tool string

const (
	DailyLogsTool    Tool = "daily_logs"
	TimeTrackingTool Tool = "time_tracking"
	ProjectsTool     Tool = "projects"
	ApprovalsTool    Tool = "approvals"
	SettingsTool     Tool = "company_settings"
	ReportsTool      Tool = "reports"
)

type AccessLevel string

const (
	AccessLevelAdmin  AccessLevel = "admin"
	AccessLevelMember AccessLevel = "member"
	AccessLevelNone   AccessLevel = "none"
)

func (l AccessLevel) IsAdmin() bool {
	return l == AccessLevelAdmin
}

// DataAccessPolicy - политика видимости записей для роли
type DataAccessPolicy string

const (
	DataAccessAll              DataAccessPolicy = "ALL"
	DataAccessAssignedProjects DataAccessPolicy = "ASSIGNED_PROJECTS"
	DataAccessOwnOnly          DataAccessPolicy = "OWN_ONLY"
)

var policyHumanName = map[DataAccessPolicy]string{
	DataAccessAll:              "Все записи",
	DataAccessAssignedProjects: "Свои и по назначенным проектам",
	DataAccessOwnOnly:          "Только свои",
}

func (p DataAccessPolicy) ToHuman() string {
	if human, exist := policyHumanName[p]; exist {
		return human
	}
	return string(p)
}

func (p DataAccessPolicy) IsValid() bool {
	_, exist := policyHumanName[p]
	return exist
}

// RoleDataAccess - настройки доступа к данным для одной роли
type RoleDataAccess struct {
	DailyLogAccess  DataAccessPolicy     `json:"daily_log_access"`
	TimeEntryAccess DataAccessPolicy     `json:"time_entry_access"`
	ToolOverrides   map[Tool]AccessLevel `json:"tool_overrides,omitempty"`
}

// Access - вычисленный доступ пользователя к области для конкретного проекта
type Access struct {
	IsOwnerAdmin bool
	Level        AccessLevel
}

func (a Access) HasAdminLevel() bool {
	return a.IsOwnerAdmin || a.Level.IsAdmin()
}

// уровни доступа по умолчанию, если нет переопределения в настройках компании.
// Прораб и выше - admin для большинства областей.
var defaultToolAccess = map[UserRole]map[Tool]AccessLevel{
	AdminRole: {},
	ProjectManagerRole: {
		DailyLogsTool:    AccessLevelAdmin,
		TimeTrackingTool: AccessLevelAdmin,
		ProjectsTool:     AccessLevelAdmin,
		ApprovalsTool:    AccessLevelAdmin,
		SettingsTool:     AccessLevelNone,
		ReportsTool:      AccessLevelAdmin,
	},
	SuperintendentRole: {
		DailyLogsTool:    AccessLevelAdmin,
		TimeTrackingTool: AccessLevelAdmin,
		ProjectsTool:     AccessLevelMember,
		ApprovalsTool:    AccessLevelAdmin,
		SettingsTool:     AccessLevelNone,
		ReportsTool:      AccessLevelMember,
	},
	MechanicRole: {
		DailyLogsTool:    AccessLevelMember,
		TimeTrackingTool: AccessLevelMember,
		ProjectsTool:     AccessLevelMember,
		ApprovalsTool:    AccessLevelNone,
		SettingsTool:     AccessLevelNone,
		ReportsTool:      AccessLevelNone,
	},
	FieldWorkerRole: {
		DailyLogsTool:    AccessLevelMember,
		TimeTrackingTool: AccessLevelMember,
		ProjectsTool:     AccessLevelMember,
		ApprovalsTool:    AccessLevelNone,
		SettingsTool:     AccessLevelNone,
		ReportsTool:      AccessLevelNone,
	},
	ViewerRole: {
		DailyLogsTool:    AccessLevelMember,
		TimeTrackingTool: AccessLevelNone,
		ProjectsTool:     AccessLevelMember,
		ApprovalsTool:    AccessLevelNone,
		SettingsTool:     AccessLevelNone,
		ReportsTool:      AccessLevelNone,
	},
}

// DefaultToolAccess возвращает уровень по умолчанию для роли и области
func DefaultToolAccess(role UserRole, tool Tool) AccessLevel {
	if role.IsOwnerAdmin() {
		return AccessLevelAdmin
	}
	toolMap, exist := defaultToolAccess[role]
	if !exist {
		return AccessLevelNone
	}
	level, exist := toolMap[tool]
	if !exist {
		return AccessLevelNone
	}
	return level
}
