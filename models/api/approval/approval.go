package approvalapimodels

import (
	"github.com/pkg/errors"

	"stroy-tools-backend/models"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
)

type PendingFilter struct {
	ProjectID string `json:"project_id"`
}

type PendingSummary struct {
	TimeEntryCount int `json:"time_entry_count"`
	DailyLogCount  int `json:"daily_log_count"`
	Total          int `json:"total"`
}

type PendingView struct {
	TimeEntries []timeentryapimodels.TimeEntryView `json:"time_entries"`
	DailyLogs   []dailylogapimodels.DailyLogView   `json:"daily_logs"`
	Summary     PendingSummary                     `json:"summary"`
}

type DecisionData struct {
	ID      string                  `json:"id"`
	Type    models.ApprovalItemType `json:"type"`
	Approve bool                    `json:"approve"`
	Note    string                  `json:"note"`
}

func (r DecisionData) Validate() error {
	if r.ID == "" {
		return errors.New("не указан идентификатор записи")
	}
	if !r.Type.IsValid() {
		return errors.Errorf("неизвестный тип записи: %v", r.Type)
	}
	return nil
}

type BulkDecisionData struct {
	Items []DecisionData `json:"items"`
}

func (r BulkDecisionData) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("пустой список записей")
	}
	return nil
}

type BulkItemResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BulkResult - итог пакетной обработки: ошибки по элементам не прерывают пакет
type BulkResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Items   []BulkItemResult `json:"items"`
}
