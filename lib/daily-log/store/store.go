package dailylogstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stroy-tools-backend/models"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DailyLog) (id string, err error)
	GetByID(companyID, id string) (rec *dbmodels.DailyLog, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	// UpdateWithStatus обновляет запись только если её текущий статус равен ожидаемому.
	// Возвращает количество изменённых строк: 0 - статус уже изменён конкурентным запросом.
	UpdateWithStatus(companyID, id string, expected models.DailyLogStatus, updMap map[string]interface{}) (rowsAffected int64, err error)
	Delete(companyID, id string) error
	List(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (list []dbmodels.DailyLog, err error)
	ListCount(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (rowCount int64, err error)
	ListPending(companyID, projectID string) (list []dbmodels.DailyLog, err error)
	ReplaceChildren(rec dbmodels.DailyLog) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DailyLog) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(companyID, id string) (*dbmodels.DailyLog, error) {
	rec := dbmodels.DailyLog{}
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

func (i impl) Update(companyID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.DailyLog{}).
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

func (i impl) UpdateWithStatus(companyID, id string, expected models.DailyLogStatus, updMap map[string]interface{}) (rowsAffected int64, err error) {
	tx := i.db.
		Model(&dbmodels.DailyLog{}).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Where("status = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) Delete(companyID, id string) error {
	rec := dbmodels.DailyLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			CompanyID: companyID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

// applyScope добавляет предикат видимости к запросу
func applyScope(tx *gorm.DB, scope models.VisibilityScope) *gorm.DB {
	if scope.Unrestricted {
		return tx
	}
	if len(scope.ProjectIDs) > 0 {
		return tx.Where("submitted_by = ? OR project_id IN ?", scope.OwnerID, []string(scope.ProjectIDs))
	}
	return tx.Where("submitted_by = ?", scope.OwnerID)
}

func (i impl) applyFilter(tx *gorm.DB, companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) *gorm.DB {
	tx = tx.Where("company_id = ?", companyID)
	tx = applyScope(tx, scope)
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		tx = tx.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx = tx.Where("date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		tx = tx.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}
	return tx
}

func (i impl) List(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (list []dbmodels.DailyLog, err error) {
	list = []dbmodels.DailyLog{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.DailyLog{}), companyID, scope, filter).
		Preload(clause.Associations).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (rowCount int64, err error) {
	err = i.applyFilter(i.db.Model(dbmodels.DailyLog{}), companyID, scope, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ListPending(companyID, projectID string) (list []dbmodels.DailyLog, err error) {
	list = []dbmodels.DailyLog{}
	tx := i.db.
		Where("company_id = ?", companyID).
		Where("status = ?", models.DLStatusSubmitted).
		Preload(clause.Associations)
	if projectID != "" {
		tx = tx.Where("project_id = ?", projectID)
	}
	err = tx.Order("date").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceChildren полностью заменяет дочерние записи отчёта: удаляем и создаём заново
func (i impl) ReplaceChildren(rec dbmodels.DailyLog) error {
	if rec.ID == "" {
		return errors.New("не указан идентификатор отчёта")
	}
	if err := i.db.Where("daily_log_id = ?", rec.ID).Delete(&dbmodels.DailyLogEntry{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("daily_log_id = ?", rec.ID).Delete(&dbmodels.DailyLogMaterial{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("daily_log_id = ?", rec.ID).Delete(&dbmodels.DailyLogIssue{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("daily_log_id = ?", rec.ID).Delete(&dbmodels.DailyLogVisitor{}).Error; err != nil {
		return err
	}
	for idx := range rec.Entries {
		rec.Entries[idx].DailyLogID = rec.ID
		if err := i.db.Create(&rec.Entries[idx]).Error; err != nil {
			return err
		}
	}
	for idx := range rec.Materials {
		rec.Materials[idx].DailyLogID = rec.ID
		if err := i.db.Create(&rec.Materials[idx]).Error; err != nil {
			return err
		}
	}
	for idx := range rec.Issues {
		rec.Issues[idx].DailyLogID = rec.ID
		if err := i.db.Create(&rec.Issues[idx]).Error; err != nil {
			return err
		}
	}
	for idx := range rec.Visitors {
		rec.Visitors[idx].DailyLogID = rec.ID
		if err := i.db.Create(&rec.Visitors[idx]).Error; err != nil {
			return err
		}
	}
	return nil
}
