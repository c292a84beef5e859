package dbmodels

import (
	"fmt"
	"time"

	"stroy-tools-backend/models"
)

type User struct {
	BaseModel
	Password    string `gorm:"type:varchar(128)"`
	FirstName   string `gorm:"type:varchar(150)"`
	LastName    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255);index"`
	PhoneNumber string `gorm:"type:varchar(15)"`
	CompanyID   string `gorm:"type:varchar(36);index"`
	Company     *Company
	Role        models.UserRole   `gorm:"type:varchar(50)"`
	Status      models.UserStatus `gorm:"type:varchar(50)"`
	LastLogin   time.Time
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r User) IsActive() bool {
	return r.Status == models.UserActiveStatus
}
