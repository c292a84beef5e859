package companysettingsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"stroy-tools-backend/models"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	GetOrCreate(companyID string) (rec *dbmodels.CompanySetting, err error)
	UpdateRoleAccess(companyID string, role models.UserRole, access models.RoleDataAccess) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// единственная запись на компанию: читаем, при отсутствии создаём пустую
func (i impl) GetOrCreate(companyID string) (*dbmodels.CompanySetting, error) {
	rec := dbmodels.CompanySetting{}
	err := i.db.
		Where("company_id = ?", companyID).
		First(&rec).
		Error
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rec = dbmodels.CompanySetting{
		CompanyID:      companyID,
		RoleDataAccess: dbmodels.RoleDataAccessMap{},
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateRoleAccess(companyID string, role models.UserRole, access models.RoleDataAccess) error {
	rec, err := i.GetOrCreate(companyID)
	if err != nil {
		return err
	}
	if rec.RoleDataAccess == nil {
		rec.RoleDataAccess = dbmodels.RoleDataAccessMap{}
	}
	rec.RoleDataAccess[role] = access
	tx := i.db.
		Model(&dbmodels.CompanySetting{}).
		Where("company_id = ?", companyID).
		Update("role_data_access", rec.RoleDataAccess)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}
