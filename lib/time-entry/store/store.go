package timeentrystore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stroy-tools-backend/models"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TimeEntry) (id string, err error)
	GetByID(companyID, id string) (rec *dbmodels.TimeEntry, err error)
	GetOpenEntry(companyID, userID string) (rec *dbmodels.TimeEntry, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	// UpdateWithStatus обновляет запись только в ожидаемом статусе (защита от гонки решений)
	UpdateWithStatus(companyID, id string, expected models.TimeEntryStatus, updMap map[string]interface{}) (rowsAffected int64, err error)
	List(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) (list []dbmodels.TimeEntry, err error)
	ListCount(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) (rowCount int64, err error)
	ListPending(companyID, projectID string) (list []dbmodels.TimeEntry, err error)
	ListStaleOpen(cutoff time.Time) (list []dbmodels.TimeEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TimeEntry) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(companyID, id string) (*dbmodels.TimeEntry, error) {
	rec := dbmodels.TimeEntry{}
	err := i.db.
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetOpenEntry - незакрытая смена сотрудника (clock_out ещё не проставлен)
func (i impl) GetOpenEntry(companyID, userID string) (*dbmodels.TimeEntry, error) {
	rec := dbmodels.TimeEntry{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("user_id = ?", userID).
		Where("clock_out IS NULL").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(companyID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TimeEntry{}).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) UpdateWithStatus(companyID, id string, expected models.TimeEntryStatus, updMap map[string]interface{}) (rowsAffected int64, err error) {
	tx := i.db.
		Model(&dbmodels.TimeEntry{}).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Where("status = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func applyScope(tx *gorm.DB, scope models.VisibilityScope) *gorm.DB {
	if scope.Unrestricted {
		return tx
	}
	if len(scope.ProjectIDs) > 0 {
		return tx.Where("user_id = ? OR project_id IN ?", scope.OwnerID, []string(scope.ProjectIDs))
	}
	return tx.Where("user_id = ?", scope.OwnerID)
}

func (i impl) applyFilter(tx *gorm.DB, companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) *gorm.DB {
	tx = tx.Where("company_id = ?", companyID)
	tx = applyScope(tx, scope)
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		tx = tx.Where("clock_in >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx = tx.Where("clock_in < (?::date + 1)", filter.DateTo)
	}
	return tx
}

func (i impl) List(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) (list []dbmodels.TimeEntry, err error) {
	list = []dbmodels.TimeEntry{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.TimeEntry{}), companyID, scope, filter).
		Preload(clause.Associations).
		Order("clock_in DESC").
		Offset((page - 1) * limit).
		Limit(limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) (rowCount int64, err error) {
	err = i.applyFilter(i.db.Model(dbmodels.TimeEntry{}), companyID, scope, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ListPending(companyID, projectID string) (list []dbmodels.TimeEntry, err error) {
	list = []dbmodels.TimeEntry{}
	tx := i.db.
		Where("company_id = ?", companyID).
		Where("status = ?", models.TEStatusPending).
		Where("clock_out IS NOT NULL").
		Preload(clause.Associations)
	if projectID != "" {
		tx = tx.Where("project_id = ?", projectID)
	}
	err = tx.Order("clock_in").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListStaleOpen - смены, открытые раньше порога и не закрытые до сих пор
func (i impl) ListStaleOpen(cutoff time.Time) (list []dbmodels.TimeEntry, err error) {
	list = []dbmodels.TimeEntry{}
	err = i.db.
		Where("clock_out IS NULL").
		Where("clock_in < ?", cutoff).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
