package companyapimodels

import (
	"github.com/pkg/errors"

	"stroy-tools-backend/models"
	dbmodels "stroy-tools-backend/models/db"
)

type RoleAccessView struct {
	RoleDataAccess            map[models.UserRole]models.RoleDataAccess `json:"role_data_access"`
	FieldWorkerDailyLogAccess models.DataAccessPolicy                   `json:"field_worker_daily_log_access,omitempty"`
}

func SettingConvert(rec dbmodels.CompanySetting) RoleAccessView {
	return RoleAccessView{
		RoleDataAccess:            rec.RoleDataAccess,
		FieldWorkerDailyLogAccess: rec.FieldWorkerDailyLogAccess,
	}
}

type RoleAccessUpdateData struct {
	Role   models.UserRole       `json:"role"`
	Access models.RoleDataAccess `json:"access"`
}

func (r RoleAccessUpdateData) Validate() error {
	if !r.Role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", r.Role)
	}
	if r.Access.DailyLogAccess != "" && !r.Access.DailyLogAccess.IsValid() {
		return errors.Errorf("неизвестная политика доступа: %v", r.Access.DailyLogAccess)
	}
	if r.Access.TimeEntryAccess != "" && !r.Access.TimeEntryAccess.IsValid() {
		return errors.Errorf("неизвестная политика доступа: %v", r.Access.TimeEntryAccess)
	}
	for tool, level := range r.Access.ToolOverrides {
		switch level {
		case models.AccessLevelAdmin, models.AccessLevelMember, models.AccessLevelNone:
		default:
			return errors.Errorf("недопустимый уровень доступа %v для области %v", level, tool)
		}
	}
	return nil
}
