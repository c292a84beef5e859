package rbac

import (
	"stroy-tools-backend/models"
)

var (
	AdminRoleSet    = []models.UserRole{models.AdminRole}
	AdminPmRoleSet  = []models.UserRole{models.AdminRole, models.ProjectManagerRole}
	ReviewerRoleSet = []models.UserRole{models.AdminRole, models.ProjectManagerRole, models.SuperintendentRole}
	// все роли кроме наблюдателя - наблюдатель только читает
	WorkerRoleSet = []models.UserRole{models.AdminRole, models.ProjectManagerRole, models.SuperintendentRole, models.MechanicRole, models.FieldWorkerRole}
	AllRoles      = []models.UserRole{models.AdminRole, models.ProjectManagerRole, models.SuperintendentRole, models.MechanicRole, models.FieldWorkerRole, models.ViewerRole}
)

func (i *impl) initRules() {
	i.addUsersRbac()
	i.addProjectsRbac()
	i.addDailyLogsRbac()
	i.addTimeTrackingRbac()
	i.addApprovalsRbac()
	i.addSettingsRbac()
	i.addReportsRbac()
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [put]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [delete]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/change_role [put]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/suspend [put]", nil)
}

func (i *impl) addProjectsRbac() {
	//VIEW
	i.RegisterRule(models.ProjectsModule, models.ViewPermission, AllRoles, "/api/v1/projects/list [post]", nil)
	i.RegisterRule(models.ProjectsModule, models.ViewPermission, AllRoles, "/api/v1/projects/{id} [get]", nil)
	i.RegisterRule(models.ProjectsModule, models.ViewPermission, AllRoles, "/api/v1/projects/{id}/assignments [get]", nil)
	//MANAGE
	i.RegisterRule(models.ProjectsModule, models.ManagePermission, AdminPmRoleSet, "/api/v1/projects [post]", nil)
	i.RegisterRule(models.ProjectsModule, models.ManagePermission, AdminPmRoleSet, "/api/v1/projects/{id} [put]", nil)
	i.RegisterRule(models.ProjectsModule, models.ManagePermission, AdminPmRoleSet, "/api/v1/projects/{id}/archive [put]", nil)
	i.RegisterRule(models.ProjectsModule, models.ManagePermission, AdminPmRoleSet, "/api/v1/projects/{id}/assign [post]", nil)
	i.RegisterRule(models.ProjectsModule, models.ManagePermission, AdminPmRoleSet, "/api/v1/projects/{id}/assign/{user_id} [delete]", nil)
}

func (i *impl) addDailyLogsRbac() {
	//VIEW
	i.RegisterRule(models.DailyLogsModule, models.ViewPermission, AllRoles, "/api/v1/daily_logs/list [post]", nil)
	i.RegisterRule(models.DailyLogsModule, models.ViewPermission, AllRoles, "/api/v1/daily_logs/{id} [get]", nil)
	i.RegisterRule(models.DailyLogsModule, models.ViewPermission, AllRoles, "/api/v1/daily_logs/{id}/pdf [get]", nil)
	//CREATE/EDIT
	i.RegisterRule(models.DailyLogsModule, models.CreatePermission, WorkerRoleSet, "/api/v1/daily_logs [post]", nil)
	i.RegisterRule(models.DailyLogsModule, models.EditPermission, WorkerRoleSet, "/api/v1/daily_logs/{id} [put]", nil)
	i.RegisterRule(models.DailyLogsModule, models.EditPermission, WorkerRoleSet, "/api/v1/daily_logs/{id} [delete]", nil)
	//FLOW
	i.RegisterRule(models.DailyLogsModule, models.FlowPermission, WorkerRoleSet, "/api/v1/daily_logs/{id}/submit [put]", nil)
	i.RegisterRule(models.DailyLogsModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/daily_logs/{id}/approve [put]", nil)
	i.RegisterRule(models.DailyLogsModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/daily_logs/{id}/reject [put]", nil)
}

func (i *impl) addTimeTrackingRbac() {
	//VIEW
	i.RegisterRule(models.TimeTrackingModule, models.ViewPermission, AllRoles, "/api/v1/time_entries/list [post]", nil)
	i.RegisterRule(models.TimeTrackingModule, models.ViewPermission, AllRoles, "/api/v1/time_entries/open [get]", nil)
	//EDIT
	i.RegisterRule(models.TimeTrackingModule, models.EditPermission, WorkerRoleSet, "/api/v1/time_entries/clock_in [post]", nil)
	i.RegisterRule(models.TimeTrackingModule, models.EditPermission, WorkerRoleSet, "/api/v1/time_entries/clock_out [post]", nil)
	//FLOW
	i.RegisterRule(models.TimeTrackingModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/time_entries/{id}/approve [put]", nil)
	i.RegisterRule(models.TimeTrackingModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/time_entries/{id}/reject [put]", nil)
}

func (i *impl) addApprovalsRbac() {
	// VIEW
	i.RegisterRule(models.ApprovalsModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/approvals/pending [post]", nil)
	//FLOW
	i.RegisterRule(models.ApprovalsModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/approvals/decision [post]", nil)
	i.RegisterRule(models.ApprovalsModule, models.FlowPermission, ReviewerRoleSet, "/api/v1/approvals/bulk_decision [post]", nil)
}

func (i *impl) addSettingsRbac() {
	// VIEW
	i.RegisterRule(models.SettingsModule, models.ViewPermission, AllRoles, "/api/v1/company_settings [get]", nil)
	//MANAGE
	i.RegisterRule(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/company_settings/role_access [put]", nil)
}

func (i *impl) addReportsRbac() {
	// VIEW
	i.RegisterRule(models.ReportsModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/reports/time_entries/xlsx [post]", nil)
}
