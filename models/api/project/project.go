package projectapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	apimodels "stroy-tools-backend/models/api"
	dbmodels "stroy-tools-backend/models/db"
)

type ProjectData struct {
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Address    string     `json:"address"`
	Customer   string     `json:"customer"`
	Trades     []string   `json:"trades"`
	StartDate  *time.Time `json:"start_date"`
	FinishDate *time.Time `json:"finish_date"`
}

func (r ProjectData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано наименование проекта")
	}
	if r.StartDate != nil && r.FinishDate != nil && r.FinishDate.Before(*r.StartDate) {
		return errors.New("дата окончания раньше даты начала")
	}
	return nil
}

type ProjectView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Address    string     `json:"address"`
	Customer   string     `json:"customer"`
	Trades     []string   `json:"trades"`
	StartDate  *time.Time `json:"start_date"`
	FinishDate *time.Time `json:"finish_date"`
	IsActive   bool       `json:"is_active"`
}

func ProjectConvert(rec dbmodels.Project) ProjectView {
	return ProjectView{
		ID:         rec.ID,
		Name:       rec.Name,
		Code:       rec.Code,
		Address:    rec.Address,
		Customer:   rec.Customer,
		Trades:     rec.Trades,
		StartDate:  rec.StartDate,
		FinishDate: rec.FinishDate,
		IsActive:   rec.IsActive,
	}
}

type ProjectFilter struct {
	apimodels.Pagination
	Search     string `json:"search"`
	OnlyActive bool   `json:"only_active"`
}

type AssignData struct {
	UserID string `json:"user_id"`
}

func (r AssignData) Validate() error {
	if r.UserID == "" {
		return errors.New("не указан сотрудник")
	}
	return nil
}

type AssignmentView struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	ProjectID  string `json:"project_id"`
	AssignedBy string `json:"assigned_by"`
}

func AssignmentConvert(rec dbmodels.ProjectAssignment) AssignmentView {
	view := AssignmentView{
		ID:         rec.ID,
		UserID:     rec.UserID,
		ProjectID:  rec.ProjectID,
		AssignedBy: rec.AssignedBy,
	}
	if rec.User != nil {
		view.UserName = rec.User.GetFullName()
	}
	return view
}
