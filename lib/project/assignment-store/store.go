package assignmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ProjectAssignment) (id string, err error)
	Get(companyID, projectID, userID string) (rec *dbmodels.ProjectAssignment, err error)
	ListByProject(companyID, projectID string) (list []dbmodels.ProjectAssignment, err error)
	GetProjectIds(companyID, userID string) (ids []string, err error)
	Delete(companyID, projectID, userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProjectAssignment) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Get(companyID, projectID, userID string) (*dbmodels.ProjectAssignment, error) {
	rec := dbmodels.ProjectAssignment{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("project_id = ?", projectID).
		Where("user_id = ?", userID).
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

func (i impl) ListByProject(companyID, projectID string) (list []dbmodels.ProjectAssignment, err error) {
	list = []dbmodels.ProjectAssignment{}
	err = i.db.
		Where("company_id = ?", companyID).
		Where("project_id = ?", projectID).
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetProjectIds - проекты, на которые назначен сотрудник
func (i impl) GetProjectIds(companyID, userID string) (ids []string, err error) {
	err = i.db.
		Model(dbmodels.ProjectAssignment{}).
		Select("project_id").
		Where("company_id = ?", companyID).
		Where("user_id = ?", userID).
		Find(&ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) Delete(companyID, projectID, userID string) error {
	tx := i.db.
		Where("company_id = ?", companyID).
		Where("project_id = ?", projectID).
		Where("user_id = ?", userID).
		Delete(&dbmodels.ProjectAssignment{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("назначение не найдено")
	}
	return nil
}
