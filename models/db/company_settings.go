package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"

	"stroy-tools-backend/models"
)

// RoleDataAccessMap хранится одной jsonb-колонкой, ключ - роль
type RoleDataAccessMap map[models.UserRole]models.RoleDataAccess

func (m RoleDataAccessMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *RoleDataAccessMap) Scan(value interface{}) error {
	if value == nil {
		*m = RoleDataAccessMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип колонки role_data_access: %T", value)
	}
	if len(data) == 0 {
		*m = RoleDataAccessMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// CompanySetting - единственная запись настроек на компанию (создаётся при первом чтении)
type CompanySetting struct {
	BaseModel
	CompanyID      string            `gorm:"type:varchar(36);uniqueIndex"`
	RoleDataAccess RoleDataAccessMap `gorm:"type:jsonb;default:'{}'"`
	// устаревший флаг, учитывается если для FIELD_WORKER нет записи в RoleDataAccess
	FieldWorkerDailyLogAccess models.DataAccessPolicy `gorm:"type:varchar(50)"`
}

// PolicyForRole - политика видимости дневных отчётов для роли:
// явная настройка роли, затем устаревший флаг рабочего, затем ASSIGNED_PROJECTS
func (r CompanySetting) PolicyForRole(role models.UserRole) models.DataAccessPolicy {
	if access, exist := r.RoleDataAccess[role]; exist && access.DailyLogAccess.IsValid() {
		return access.DailyLogAccess
	}
	if role == models.FieldWorkerRole && r.FieldWorkerDailyLogAccess.IsValid() {
		return r.FieldWorkerDailyLogAccess
	}
	return models.DataAccessAssignedProjects
}

// TimeEntryPolicyForRole - политика видимости записей времени
func (r CompanySetting) TimeEntryPolicyForRole(role models.UserRole) models.DataAccessPolicy {
	if access, exist := r.RoleDataAccess[role]; exist && access.TimeEntryAccess.IsValid() {
		return access.TimeEntryAccess
	}
	return models.DataAccessAssignedProjects
}

// ToolOverride - переопределение уровня доступа к области для роли
func (r CompanySetting) ToolOverride(role models.UserRole, tool models.Tool) (models.AccessLevel, bool) {
	access, exist := r.RoleDataAccess[role]
	if !exist || access.ToolOverrides == nil {
		return "", false
	}
	level, exist := access.ToolOverrides[tool]
	return level, exist
}
