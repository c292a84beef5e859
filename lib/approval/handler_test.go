package approvalhandler

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	approvalapimodels "stroy-tools-backend/models/api/approval"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
	dbmodels "stroy-tools-backend/models/db"
)

const (
	testCompanyID  = "company-1"
	testReviewerID = "reviewer-1"
)

type fakeDailyLogStore struct {
	pending []dbmodels.DailyLog
}

func (f fakeDailyLogStore) Create(rec dbmodels.DailyLog) (string, error) { return "", nil }
func (f fakeDailyLogStore) GetByID(companyID, id string) (*dbmodels.DailyLog, error) {
	return nil, nil
}
func (f fakeDailyLogStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f fakeDailyLogStore) UpdateWithStatus(companyID, id string, expected models.DailyLogStatus, updMap map[string]interface{}) (int64, error) {
	return 0, nil
}
func (f fakeDailyLogStore) Delete(companyID, id string) error { return nil }
func (f fakeDailyLogStore) List(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) ([]dbmodels.DailyLog, error) {
	return nil, nil
}
func (f fakeDailyLogStore) ListCount(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (int64, error) {
	return 0, nil
}
func (f fakeDailyLogStore) ListPending(companyID, projectID string) ([]dbmodels.DailyLog, error) {
	return f.pending, nil
}
func (f fakeDailyLogStore) ReplaceChildren(rec dbmodels.DailyLog) error { return nil }

type fakeTimeEntryStore struct {
	pending []dbmodels.TimeEntry
}

func (f fakeTimeEntryStore) Create(rec dbmodels.TimeEntry) (string, error) { return "", nil }
func (f fakeTimeEntryStore) GetByID(companyID, id string) (*dbmodels.TimeEntry, error) {
	return nil, nil
}
func (f fakeTimeEntryStore) GetOpenEntry(companyID, userID string) (*dbmodels.TimeEntry, error) {
	return nil, nil
}
func (f fakeTimeEntryStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f fakeTimeEntryStore) UpdateWithStatus(companyID, id string, expected models.TimeEntryStatus, updMap map[string]interface{}) (int64, error) {
	return 0, nil
}
func (f fakeTimeEntryStore) List(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) ([]dbmodels.TimeEntry, error) {
	return nil, nil
}
func (f fakeTimeEntryStore) ListCount(companyID string, scope models.VisibilityScope, filter timeentryapimodels.TimeEntryFilter) (int64, error) {
	return 0, nil
}
func (f fakeTimeEntryStore) ListPending(companyID, projectID string) ([]dbmodels.TimeEntry, error) {
	return f.pending, nil
}
func (f fakeTimeEntryStore) ListStaleOpen(cutoff time.Time) ([]dbmodels.TimeEntry, error) {
	return nil, nil
}

// фиксирует решения и возвращает ошибку для заданных записей
type fakeDailyLogs struct {
	approved []string
	returned []string
	failIDs  map[string]error
}

func (f *fakeDailyLogs) Approve(companyID, reviewerID string, role models.UserRole, id string) error {
	if err, exist := f.failIDs[id]; exist {
		return err
	}
	f.approved = append(f.approved, id)
	return nil
}
func (f *fakeDailyLogs) ReturnToDraft(companyID, reviewerID string, role models.UserRole, id, note string) error {
	if err, exist := f.failIDs[id]; exist {
		return err
	}
	f.returned = append(f.returned, id)
	return nil
}

type fakeTimeEntries struct {
	approved []string
	rejected []string
	failIDs  map[string]error
}

func (f *fakeTimeEntries) Approve(companyID, reviewerID string, role models.UserRole, id string) error {
	if err, exist := f.failIDs[id]; exist {
		return err
	}
	f.approved = append(f.approved, id)
	return nil
}
func (f *fakeTimeEntries) Reject(companyID, reviewerID string, role models.UserRole, id, note string) error {
	if err, exist := f.failIDs[id]; exist {
		return err
	}
	f.rejected = append(f.rejected, id)
	return nil
}

func TestListPending(t *testing.T) {
	t.Run(`очередь объединяет оба типа записей`, func(t *testing.T) {
		handler := impl{
			dailyLogStore: fakeDailyLogStore{pending: []dbmodels.DailyLog{
				{BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "dl-1"}}},
			}},
			timeEntryStore: fakeTimeEntryStore{pending: []dbmodels.TimeEntry{
				{BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "te-1"}}},
				{BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "te-2"}}},
			}},
		}
		item, err := handler.ListPending(testCompanyID, testReviewerID, models.ProjectManagerRole, approvalapimodels.PendingFilter{})
		require.Nil(t, err)
		require.Equal(t, 2, item.Summary.TimeEntryCount)
		require.Equal(t, 1, item.Summary.DailyLogCount)
		require.Equal(t, 3, item.Summary.Total)
	})

	t.Run(`очередь недоступна несогласующей роли`, func(t *testing.T) {
		handler := impl{}
		_, err := handler.ListPending(testCompanyID, testReviewerID, models.FieldWorkerRole, approvalapimodels.PendingFilter{})
		code, ok := apierrors.GetCode(err)
		require.True(t, ok)
		require.Equal(t, fiber.StatusForbidden, code)
	})
}

func TestDecide(t *testing.T) {
	t.Run(`отклонение отчёта из очереди возвращает его в черновик`, func(t *testing.T) {
		dailyLogs := &fakeDailyLogs{}
		handler := impl{dailyLogs: dailyLogs}
		err := handler.Decide(testCompanyID, testReviewerID, models.SuperintendentRole, approvalapimodels.DecisionData{
			ID:      "dl-1",
			Type:    models.ApprovalItemDailyLog,
			Approve: false,
			Note:    "уточнить объёмы",
		})
		require.Nil(t, err)
		require.Equal(t, []string{"dl-1"}, dailyLogs.returned)
		require.Empty(t, dailyLogs.approved)
	})

	t.Run(`согласование записи времени`, func(t *testing.T) {
		timeEntries := &fakeTimeEntries{}
		handler := impl{timeEntries: timeEntries}
		err := handler.Decide(testCompanyID, testReviewerID, models.SuperintendentRole, approvalapimodels.DecisionData{
			ID:      "te-1",
			Type:    models.ApprovalItemTimeEntry,
			Approve: true,
		})
		require.Nil(t, err)
		require.Equal(t, []string{"te-1"}, timeEntries.approved)
	})
}

func TestBulkDecide(t *testing.T) {
	t.Run(`ошибка одного элемента не прерывает пакет`, func(t *testing.T) {
		dailyLogs := &fakeDailyLogs{failIDs: map[string]error{
			"dl-bad": apierrors.NewConflict("статус отчёта изменён другим запросом"),
		}}
		timeEntries := &fakeTimeEntries{}
		handler := impl{dailyLogs: dailyLogs, timeEntries: timeEntries}

		result, err := handler.BulkDecide(testCompanyID, testReviewerID, models.AdminRole, approvalapimodels.BulkDecisionData{
			Items: []approvalapimodels.DecisionData{
				{ID: "te-1", Type: models.ApprovalItemTimeEntry, Approve: true},
				{ID: "dl-bad", Type: models.ApprovalItemDailyLog, Approve: true},
				{ID: "dl-2", Type: models.ApprovalItemDailyLog, Approve: true},
			},
		})
		require.Nil(t, err)
		require.Equal(t, 2, result.Success)
		require.Equal(t, 1, result.Failed)
		require.Len(t, result.Items, 3)
		require.True(t, result.Items[0].Success)
		require.False(t, result.Items[1].Success)
		require.NotEmpty(t, result.Items[1].Message)
		require.True(t, result.Items[2].Success)
		require.Equal(t, []string{"te-1"}, timeEntries.approved)
		require.Equal(t, []string{"dl-2"}, dailyLogs.approved)
	})

	t.Run(`элемент с неизвестным типом попадает в ошибки`, func(t *testing.T) {
		handler := impl{dailyLogs: &fakeDailyLogs{}, timeEntries: &fakeTimeEntries{}}
		result, err := handler.BulkDecide(testCompanyID, testReviewerID, models.AdminRole, approvalapimodels.BulkDecisionData{
			Items: []approvalapimodels.DecisionData{
				{ID: "x-1", Type: "UNKNOWN", Approve: true},
			},
		})
		require.Nil(t, err)
		require.Equal(t, 0, result.Success)
		require.Equal(t, 1, result.Failed)
	})

	t.Run(`пакет недоступен несогласующей роли`, func(t *testing.T) {
		handler := impl{}
		_, err := handler.BulkDecide(testCompanyID, testReviewerID, models.ViewerRole, approvalapimodels.BulkDecisionData{})
		code, ok := apierrors.GetCode(err)
		require.True(t, ok)
		require.Equal(t, fiber.StatusForbidden, code)
	})
}
