package dailylogapimodels

import (
	"time"

	"github.com/pkg/errors"

	apimodels "stroy-tools-backend/models/api"
	dbmodels "stroy-tools-backend/models/db"
)

type EntryData struct {
	Description string  `json:"description"`
	Trade       string  `json:"trade"`
	CrewCount   int     `json:"crew_count"`
	Hours       float64 `json:"hours"`
}

type MaterialData struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Supplier string  `json:"supplier"`
}

type IssueData struct {
	Description string `json:"description"`
	IsResolved  bool   `json:"is_resolved"`
}

type VisitorData struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Purpose      string `json:"purpose"`
}

type DailyLogData struct {
	ProjectID    string         `json:"project_id"`
	Date         string         `json:"date"` // YYYY-MM-DD
	Notes        string         `json:"notes"`
	CrewCount    int            `json:"crew_count"`
	WeatherDelay bool           `json:"weather_delay"`
	Weather      []string       `json:"weather"`
	TemperatureC *float64       `json:"temperature_c"`
	Entries      []EntryData    `json:"entries"`
	Materials    []MaterialData `json:"materials"`
	Issues       []IssueData    `json:"issues"`
	Visitors     []VisitorData  `json:"visitors"`
}

const dateLayout = "2006-01-02"

func (r DailyLogData) Validate() error {
	if r.ProjectID == "" {
		return errors.New("не указан проект")
	}
	if r.Date == "" {
		return errors.New("не указана дата отчёта")
	}
	if _, err := r.GetDate(); err != nil {
		return errors.Errorf("неверный формат даты: %v, ожидается YYYY-MM-DD", r.Date)
	}
	for _, entry := range r.Entries {
		if entry.Hours < 0 {
			return errors.New("часы в работе не могут быть отрицательными")
		}
	}
	return nil
}

func (r DailyLogData) GetDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

// TotalHours - суммарные часы по работам за смену
func (r DailyLogData) TotalHours() float64 {
	var total float64
	for _, entry := range r.Entries {
		total += entry.Hours
	}
	return total
}

type DailyLogFilter struct {
	apimodels.Pagination
	ProjectID string `json:"project_id"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
	Search    string `json:"search"`
	Status    string `json:"status"`
}

func (r DailyLogFilter) Validate() error {
	if r.DateFrom != "" {
		if _, err := time.Parse(dateLayout, r.DateFrom); err != nil {
			return errors.Errorf("неверный формат даты: %v", r.DateFrom)
		}
	}
	if r.DateTo != "" {
		if _, err := time.Parse(dateLayout, r.DateTo); err != nil {
			return errors.Errorf("неверный формат даты: %v", r.DateTo)
		}
	}
	return nil
}

type EntryView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Trade       string  `json:"trade"`
	CrewCount   int     `json:"crew_count"`
	Hours       float64 `json:"hours"`
}

type MaterialView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Supplier string  `json:"supplier"`
}

type IssueView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsResolved  bool   `json:"is_resolved"`
}

type VisitorView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Purpose      string `json:"purpose"`
}

type DailyLogView struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"project_id"`
	ProjectName   string         `json:"project_name,omitempty"`
	SubmittedBy   string         `json:"submitted_by,omitempty"`
	SubmitterName string         `json:"submitter_name,omitempty"`
	Date          string         `json:"date"`
	Status        string         `json:"status"`
	StatusName    string         `json:"status_name"`
	Notes         string         `json:"notes"`
	CrewCount     int            `json:"crew_count"`
	TotalHours    float64        `json:"total_hours"`
	WeatherDelay  bool           `json:"weather_delay"`
	Weather       []string       `json:"weather"`
	TemperatureC  *float64       `json:"temperature_c,omitempty"`
	ApprovedBy    string         `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	Entries       []EntryView    `json:"entries"`
	Materials     []MaterialView `json:"materials"`
	Issues        []IssueView    `json:"issues"`
	Visitors      []VisitorView  `json:"visitors"`
}

func DailyLogConvert(rec dbmodels.DailyLog) DailyLogView {
	view := DailyLogView{
		ID:           rec.ID,
		ProjectID:    rec.ProjectID,
		Date:         rec.Date.Format(dateLayout),
		Status:       string(rec.Status),
		StatusName:   rec.Status.ToHuman(),
		Notes:        rec.Notes,
		CrewCount:    rec.CrewCount,
		TotalHours:   rec.TotalHours,
		WeatherDelay: rec.WeatherDelay,
		Weather:      rec.Weather,
		TemperatureC: rec.TemperatureC,
		ApprovedAt:   rec.ApprovedAt,
		Entries:      make([]EntryView, 0, len(rec.Entries)),
		Materials:    make([]MaterialView, 0, len(rec.Materials)),
		Issues:       make([]IssueView, 0, len(rec.Issues)),
		Visitors:     make([]VisitorView, 0, len(rec.Visitors)),
	}
	if rec.Project != nil {
		view.ProjectName = rec.Project.Name
	}
	if rec.SubmittedBy != nil {
		view.SubmittedBy = *rec.SubmittedBy
	}
	if rec.Submitter != nil {
		view.SubmitterName = rec.Submitter.GetFullName()
	}
	if rec.ApprovedBy != nil {
		view.ApprovedBy = *rec.ApprovedBy
	}
	for _, entry := range rec.Entries {
		view.Entries = append(view.Entries, EntryView{
			ID:          entry.ID,
			Description: entry.Description,
			Trade:       entry.Trade,
			CrewCount:   entry.CrewCount,
			Hours:       entry.Hours,
		})
	}
	for _, material := range rec.Materials {
		view.Materials = append(view.Materials, MaterialView{
			ID:       material.ID,
			Name:     material.Name,
			Quantity: material.Quantity,
			Unit:     material.Unit,
			Supplier: material.Supplier,
		})
	}
	for _, issue := range rec.Issues {
		view.Issues = append(view.Issues, IssueView{
			ID:          issue.ID,
			Description: issue.Description,
			IsResolved:  issue.IsResolved,
		})
	}
	for _, visitor := range rec.Visitors {
		view.Visitors = append(view.Visitors, VisitorView{
			ID:           visitor.ID,
			Name:         visitor.Name,
			Organization: visitor.Organization,
			Purpose:      visitor.Purpose,
		})
	}
	return view
}

type DecisionData struct {
	Note string `json:"note"`
}
