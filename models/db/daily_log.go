package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stroy-tools-backend/models"
)

type DailyLog struct {
	BaseCompanyModel
	ProjectID    string `gorm:"type:varchar(36);index:idx_dl_project"`
	Project      *Project
	SubmittedBy  *string               `gorm:"type:varchar(36);index"`
	Submitter    *User                 `gorm:"foreignKey:SubmittedBy"`
	Date         time.Time             `gorm:"type:date;index"`
	Status       models.DailyLogStatus `gorm:"type:varchar(50);index"`
	Notes        string
	CrewCount    int
	TotalHours   float64
	WeatherDelay bool
	Weather      pq.StringArray `gorm:"type:text[]"` // погодные условия за смену
	TemperatureC *float64
	ApprovedBy   *string `gorm:"type:varchar(36)"`
	Approver     *User   `gorm:"foreignKey:ApprovedBy"`
	ApprovedAt   *time.Time
	Entries      []DailyLogEntry    `gorm:"foreignKey:DailyLogID"`
	Materials    []DailyLogMaterial `gorm:"foreignKey:DailyLogID"`
	Issues       []DailyLogIssue    `gorm:"foreignKey:DailyLogID"`
	Visitors     []DailyLogVisitor  `gorm:"foreignKey:DailyLogID"`
}

type DailyLogEntry struct {
	BaseModel
	DailyLogID  string `gorm:"type:varchar(36);index"`
	Description string
	Trade       string `gorm:"type:varchar(255)"`
	CrewCount   int
	Hours       float64
}

type DailyLogMaterial struct {
	BaseModel
	DailyLogID string `gorm:"type:varchar(36);index"`
	Name       string `gorm:"type:varchar(255)"`
	Quantity   float64
	Unit       string `gorm:"type:varchar(50)"`
	Supplier   string `gorm:"type:varchar(255)"`
}

type DailyLogIssue struct {
	BaseModel
	DailyLogID  string `gorm:"type:varchar(36);index"`
	Description string
	IsResolved  bool
}

type DailyLogVisitor struct {
	BaseModel
	DailyLogID   string `gorm:"type:varchar(36);index"`
	Name         string `gorm:"type:varchar(255)"`
	Organization string `gorm:"type:varchar(255)"`
	Purpose      string `gorm:"type:varchar(500)"`
}

func (d *DailyLog) AfterDelete(tx *gorm.DB) (err error) {
	if d.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("daily_log_id = ?", d.ID).Delete(&DailyLogEntry{})
	tx.Clauses(clause.Returning{}).Where("daily_log_id = ?", d.ID).Delete(&DailyLogMaterial{})
	tx.Clauses(clause.Returning{}).Where("daily_log_id = ?", d.ID).Delete(&DailyLogIssue{})
	tx.Clauses(clause.Returning{}).Where("daily_log_id = ?", d.ID).Delete(&DailyLogVisitor{})
	return
}

func (d DailyLog) IsOwner(userID string) bool {
	return d.SubmittedBy != nil && *d.SubmittedBy == userID
}
