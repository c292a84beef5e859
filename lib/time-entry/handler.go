package timeentryhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"stroy-tools-backend/db"
	accessresolver "stroy-tools-backend/lib/access"
	projectstore "stroy-tools-backend/lib/project/store"
	timeentrystore "stroy-tools-backend/lib/time-entry/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	ClockIn(companyID, userID string, data timeentryapimodels.ClockInData) (id string, err error)
	ClockOut(companyID, userID string) (item timeentryapimodels.TimeEntryView, err error)
	GetOpen(companyID, userID string) (item *timeentryapimodels.TimeEntryView, err error)
	List(companyID, userID string, role models.UserRole, filter timeentryapimodels.TimeEntryFilter) (list []timeentryapimodels.TimeEntryView, rowCount int64, err error)
	Approve(companyID, reviewerID string, role models.UserRole, id string) error
	Reject(companyID, reviewerID string, role models.UserRole, id, note string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        timeentrystore.NewInstance(db.DB),
		projectStore: projectstore.NewInstance(db.DB),
		resolver:     accessresolver.Instance,
	}
}

type impl struct {
	store        timeentrystore.Provider
	projectStore projectstore.Provider
	resolver     accessresolver.Provider
}

func (i impl) getLogger(companyID, userID string) *log.Entry {
	return log.
		WithField("company_id", companyID).
		WithField("user_id", userID)
}

// ClockIn открывает смену. Вторая открытая смена у одного сотрудника не допускается.
func (i impl) ClockIn(companyID, userID string, data timeentryapimodels.ClockInData) (id string, err error) {
	logger := i.getLogger(companyID, userID)
	access := i.resolver.ResolveAccess(companyID, userID, data.ProjectID, models.TimeTrackingTool)
	if access.Level == models.AccessLevelNone {
		return "", apierrors.NewForbidden("нет доступа к учёту времени на проекте")
	}
	open, err := i.store.GetOpenEntry(companyID, userID)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска открытой смены")
		return "", err
	}
	if open != nil {
		return "", apierrors.NewConflict("смена уже открыта, сначала завершите её")
	}
	rec := dbmodels.TimeEntry{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		UserID:    userID,
		ProjectID: data.ProjectID,
		ClockIn:   time.Now(),
		Status:    models.TEStatusPending,
		Note:      data.Note,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка открытия смены")
		return "", err
	}
	logger.WithField("rec_id", id).Info("открыта смена")
	return id, nil
}

func (i impl) ClockOut(companyID, userID string) (timeentryapimodels.TimeEntryView, error) {
	logger := i.getLogger(companyID, userID)
	open, err := i.store.GetOpenEntry(companyID, userID)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска открытой смены")
		return timeentryapimodels.TimeEntryView{}, err
	}
	if open == nil {
		return timeentryapimodels.TimeEntryView{}, apierrors.NewNotFound("открытая смена не найдена")
	}
	now := time.Now()
	err = i.store.Update(companyID, open.ID, map[string]interface{}{
		"ClockOut": now,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка завершения смены")
		return timeentryapimodels.TimeEntryView{}, err
	}
	open.ClockOut = &now
	logger.WithField("rec_id", open.ID).Info("смена завершена")
	return timeentryapimodels.TimeEntryConvert(*open), nil
}

func (i impl) GetOpen(companyID, userID string) (*timeentryapimodels.TimeEntryView, error) {
	open, err := i.store.GetOpenEntry(companyID, userID)
	if err != nil {
		i.getLogger(companyID, userID).WithError(err).Error("ошибка поиска открытой смены")
		return nil, err
	}
	if open == nil {
		return nil, nil
	}
	view := timeentryapimodels.TimeEntryConvert(*open)
	return &view, nil
}

func (i impl) List(companyID, userID string, role models.UserRole, filter timeentryapimodels.TimeEntryFilter) (list []timeentryapimodels.TimeEntryView, rowCount int64, err error) {
	scope, err := i.resolver.TimeEntryScope(companyID, userID, role)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(companyID, scope, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(companyID, scope, filter)
	if err != nil {
		i.getLogger(companyID, userID).WithError(err).Error("ошибка получения списка смен")
		return nil, 0, err
	}
	result := make([]timeentryapimodels.TimeEntryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, timeentryapimodels.TimeEntryConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Approve(companyID, reviewerID string, role models.UserRole, id string) error {
	return i.decide(companyID, reviewerID, id, map[string]interface{}{
		"Status":     models.TEStatusApproved,
		"ApprovedBy": reviewerID,
		"ApprovedAt": time.Now(),
	})
}

func (i impl) Reject(companyID, reviewerID string, role models.UserRole, id, note string) error {
	updMap := map[string]interface{}{
		"Status":     models.TEStatusRejected,
		"ApprovedBy": reviewerID,
		"ApprovedAt": time.Now(),
	}
	if note != "" {
		updMap["Note"] = note
	}
	return i.decide(companyID, reviewerID, id, updMap)
}

func (i impl) decide(companyID, reviewerID, id string, updMap map[string]interface{}) error {
	logger := i.getLogger(companyID, reviewerID).WithField("rec_id", id)
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения смены")
		return err
	}
	if rec == nil {
		return apierrors.NewNotFound("запись учёта времени не найдена")
	}
	access := i.resolver.ResolveAccess(companyID, reviewerID, rec.ProjectID, models.TimeTrackingTool)
	if !access.HasAdminLevel() {
		return apierrors.NewForbidden("решение по записи принимает администратор или роль с правами администратора")
	}
	if !rec.Status.AllowReview() {
		return apierrors.NewConflict(fmt.Sprintf("решение по записи в статусе %v уже принято", rec.Status.ToHuman()))
	}
	if rec.ClockOut == nil {
		return apierrors.NewConflict("смена ещё не завершена")
	}
	rowsAffected, err := i.store.UpdateWithStatus(companyID, id, models.TEStatusPending, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка решения по записи учёта времени")
		return err
	}
	if rowsAffected == 0 {
		return apierrors.NewConflict("статус записи изменён другим запросом")
	}
	logger.Info("принято решение по записи учёта времени")
	return nil
}
