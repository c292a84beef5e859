package dbmodels

import (
	"time"

	"stroy-tools-backend/models"
)

type TimeEntry struct {
	BaseCompanyModel
	UserID     string `gorm:"type:varchar(36);index"`
	User       *User
	ProjectID  string `gorm:"type:varchar(36);index"`
	Project    *Project
	ClockIn    time.Time
	ClockOut   *time.Time
	Status     models.TimeEntryStatus `gorm:"type:varchar(50);index"`
	Note       string                 `gorm:"type:varchar(500)"`
	ApprovedBy *string                `gorm:"type:varchar(36)"`
	Approver   *User                  `gorm:"foreignKey:ApprovedBy"`
	ApprovedAt *time.Time
	// запись закрыта автоматически по таймауту и требует внимания проверяющего
	AutoClosed bool
}

func (r TimeEntry) Hours() float64 {
	if r.ClockOut == nil {
		return 0
	}
	return r.ClockOut.Sub(r.ClockIn).Hours()
}
