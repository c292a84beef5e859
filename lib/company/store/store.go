package companystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Company) (id string, err error)
	GetByID(id string) (rec *dbmodels.Company, err error)
	GetActiveIds() (ids []string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Company) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetActiveIds() (ids []string, err error) {
	err = i.db.
		Model(dbmodels.Company{}).
		Select("id").
		Where("is_active = true").
		Find(&ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
