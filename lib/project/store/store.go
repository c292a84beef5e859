package projectstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	projectapimodels "stroy-tools-backend/models/api/project"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Project) (id string, err error)
	GetByID(companyID, id string) (rec *dbmodels.Project, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	Delete(companyID, id string) error
	List(companyID string, filter projectapimodels.ProjectFilter) (list []dbmodels.Project, err error)
	ListCount(companyID string, filter projectapimodels.ProjectFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(companyID, id string) (*dbmodels.Project, error) {
	rec := dbmodels.Project{}
	err := i.db.
		Where("id = ?", id).
		Where("company_id = ?", companyID).
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
		Model(&dbmodels.Project{}).
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

func (i impl) Delete(companyID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Delete(&dbmodels.Project{}).
		Error
}

func (i impl) applyFilter(tx *gorm.DB, companyID string, filter projectapimodels.ProjectFilter) *gorm.DB {
	tx = tx.Where("company_id = ?", companyID)
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		tx = tx.Where("name ILIKE ? OR code ILIKE ? OR customer ILIKE ?", search, search, search)
	}
	if filter.OnlyActive {
		tx = tx.Where("is_active = true")
	}
	return tx
}

func (i impl) List(companyID string, filter projectapimodels.ProjectFilter) (list []dbmodels.Project, err error) {
	list = []dbmodels.Project{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.Project{}), companyID, filter).
		Order("name").
		Offset((page - 1) * limit).
		Limit(limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(companyID string, filter projectapimodels.ProjectFilter) (rowCount int64, err error) {
	err = i.applyFilter(i.db.Model(dbmodels.Project{}), companyID, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}
