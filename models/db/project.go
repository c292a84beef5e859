package dbmodels

import (
	"time"

	"github.com/lib/pq"
)

type Project struct {
	BaseCompanyModel
	Name        string         `gorm:"type:varchar(255)"`
	Code        string         `gorm:"type:varchar(50)"`
	Address     string         `gorm:"type:varchar(500)"`
	Customer    string         `gorm:"type:varchar(255)"`
	Trades      pq.StringArray `gorm:"type:text[]"` // виды работ на объекте
	StartDate   *time.Time
	FinishDate  *time.Time
	IsActive    bool
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID"`
}

// ProjectAssignment - назначение сотрудника на проект.
// Наличие записи даёт доступ к проекту, если политика компании его не ограничивает.
type ProjectAssignment struct {
	BaseCompanyModel
	UserID     string `gorm:"type:varchar(36);uniqueIndex:idx_project_user"`
	User       *User
	ProjectID  string `gorm:"type:varchar(36);uniqueIndex:idx_project_user"`
	Project    *Project
	AssignedBy string `gorm:"type:varchar(36)"`
}
