package timeentryapimodels

import (
	"time"

	"github.com/pkg/errors"

	apimodels "stroy-tools-backend/models/api"
	dbmodels "stroy-tools-backend/models/db"
)

type ClockInData struct {
	ProjectID string `json:"project_id"`
	Note      string `json:"note"`
}

func (r ClockInData) Validate() error {
	if r.ProjectID == "" {
		return errors.New("не указан проект")
	}
	return nil
}

type TimeEntryFilter struct {
	apimodels.Pagination
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

type TimeEntryView struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserName    string     `json:"user_name,omitempty"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name,omitempty"`
	ClockIn     time.Time  `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	TotalHours  float64    `json:"total_hours"`
	Status      string     `json:"status"`
	StatusName  string     `json:"status_name"`
	Note        string     `json:"note,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	AutoClosed  bool       `json:"auto_closed"`
}

func TimeEntryConvert(rec dbmodels.TimeEntry) TimeEntryView {
	view := TimeEntryView{
		ID:         rec.ID,
		UserID:     rec.UserID,
		ProjectID:  rec.ProjectID,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
		TotalHours: rec.Hours(),
		Status:     string(rec.Status),
		StatusName: rec.Status.ToHuman(),
		Note:       rec.Note,
		AutoClosed: rec.AutoClosed,
	}
	if rec.User != nil {
		view.UserName = rec.User.GetFullName()
	}
	if rec.Project != nil {
		view.ProjectName = rec.Project.Name
	}
	if rec.ApprovedBy != nil {
		view.ApprovedBy = *rec.ApprovedBy
	}
	return view
}
