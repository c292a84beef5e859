package models

type RbacFunc func(companyID, userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule        Module = "USERS"
	ProjectsModule     Module = "PROJECTS"
	DailyLogsModule    Module = "DAILY_LOGS"
	TimeTrackingModule Module = "TIME_TRACKING"
	ApprovalsModule    Module = "APPROVALS"
	SettingsModule     Module = "SETTINGS"
	ReportsModule      Module = "REPORTS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)
