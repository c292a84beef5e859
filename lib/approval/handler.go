package approvalhandler

import (
	log "github.com/sirupsen/logrus"

	"stroy-tools-backend/db"
	dailyloghandler "stroy-tools-backend/lib/daily-log"
	dailylogstore "stroy-tools-backend/lib/daily-log/store"
	timeentryhandler "stroy-tools-backend/lib/time-entry"
	timeentrystore "stroy-tools-backend/lib/time-entry/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	approvalapimodels "stroy-tools-backend/models/api/approval"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
)

// Provider - единая очередь согласования: записи учёта времени и дневные отчёты.
// Пакетная обработка принимает решения по каждому элементу независимо,
// ошибка одного элемента не прерывает остальные.
type Provider interface {
	ListPending(companyID, userID string, role models.UserRole, filter approvalapimodels.PendingFilter) (item approvalapimodels.PendingView, err error)
	Decide(companyID, userID string, role models.UserRole, data approvalapimodels.DecisionData) error
	BulkDecide(companyID, userID string, role models.UserRole, data approvalapimodels.BulkDecisionData) (result approvalapimodels.BulkResult, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		dailyLogStore:  dailylogstore.NewInstance(db.DB),
		timeEntryStore: timeentrystore.NewInstance(db.DB),
		dailyLogs:      dailyloghandler.Instance,
		timeEntries:    timeentryhandler.Instance,
	}
}

// агрегатору от обработчиков нужны только операции решения
type dailyLogDecider interface {
	Approve(companyID, reviewerID string, role models.UserRole, id string) error
	ReturnToDraft(companyID, reviewerID string, role models.UserRole, id, note string) error
}

type timeEntryDecider interface {
	Approve(companyID, reviewerID string, role models.UserRole, id string) error
	Reject(companyID, reviewerID string, role models.UserRole, id, note string) error
}

type impl struct {
	dailyLogStore  dailylogstore.Provider
	timeEntryStore timeentrystore.Provider
	dailyLogs      dailyLogDecider
	timeEntries    timeEntryDecider
}

func (i impl) checkApprover(role models.UserRole) error {
	if !role.IsApprover() {
		return apierrors.NewForbidden("очередь согласования доступна только согласующим ролям")
	}
	return nil
}

func (i impl) ListPending(companyID, userID string, role models.UserRole, filter approvalapimodels.PendingFilter) (approvalapimodels.PendingView, error) {
	logger := log.
		WithField("company_id", companyID).
		WithField("user_id", userID)
	if err := i.checkApprover(role); err != nil {
		return approvalapimodels.PendingView{}, err
	}

	timeEntryList, err := i.timeEntryStore.ListPending(companyID, filter.ProjectID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения очереди записей учёта времени")
		return approvalapimodels.PendingView{}, err
	}
	dailyLogList, err := i.dailyLogStore.ListPending(companyID, filter.ProjectID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения очереди дневных отчётов")
		return approvalapimodels.PendingView{}, err
	}

	item := approvalapimodels.PendingView{
		TimeEntries: make([]timeentryapimodels.TimeEntryView, 0, len(timeEntryList)),
		DailyLogs:   make([]dailylogapimodels.DailyLogView, 0, len(dailyLogList)),
	}
	for _, rec := range timeEntryList {
		item.TimeEntries = append(item.TimeEntries, timeentryapimodels.TimeEntryConvert(rec))
	}
	for _, rec := range dailyLogList {
		item.DailyLogs = append(item.DailyLogs, dailylogapimodels.DailyLogConvert(rec))
	}
	item.Summary = approvalapimodels.PendingSummary{
		TimeEntryCount: len(item.TimeEntries),
		DailyLogCount:  len(item.DailyLogs),
		Total:          len(item.TimeEntries) + len(item.DailyLogs),
	}
	return item, nil
}

// Decide - решение по одному элементу очереди. Отклонённый из очереди дневной
// отчёт возвращается автору в черновик с пометкой проверяющего.
func (i impl) Decide(companyID, userID string, role models.UserRole, data approvalapimodels.DecisionData) error {
	if err := i.checkApprover(role); err != nil {
		return err
	}
	switch data.Type {
	case models.ApprovalItemTimeEntry:
		if data.Approve {
			return i.timeEntries.Approve(companyID, userID, role, data.ID)
		}
		return i.timeEntries.Reject(companyID, userID, role, data.ID, data.Note)
	case models.ApprovalItemDailyLog:
		if data.Approve {
			return i.dailyLogs.Approve(companyID, userID, role, data.ID)
		}
		return i.dailyLogs.ReturnToDraft(companyID, userID, role, data.ID, data.Note)
	default:
		return apierrors.NewBadRequest("неизвестный тип записи")
	}
}

func (i impl) BulkDecide(companyID, userID string, role models.UserRole, data approvalapimodels.BulkDecisionData) (approvalapimodels.BulkResult, error) {
	if err := i.checkApprover(role); err != nil {
		return approvalapimodels.BulkResult{}, err
	}
	result := approvalapimodels.BulkResult{
		Items: make([]approvalapimodels.BulkItemResult, 0, len(data.Items)),
	}
	for _, item := range data.Items {
		itemResult := approvalapimodels.BulkItemResult{
			ID:   item.ID,
			Type: string(item.Type),
		}
		err := item.Validate()
		if err == nil {
			err = i.Decide(companyID, userID, role, item)
		}
		if err != nil {
			itemResult.Message = err.Error()
			result.Failed++
		} else {
			itemResult.Success = true
			result.Success++
		}
		result.Items = append(result.Items, itemResult)
	}
	log.
		WithField("company_id", companyID).
		WithField("user_id", userID).
		WithField("success", result.Success).
		WithField("failed", result.Failed).
		Info("выполнена пакетная обработка очереди согласования")
	return result, nil
}
