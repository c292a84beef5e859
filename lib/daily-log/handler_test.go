package dailyloghandler

import (
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	dailylogstore "stroy-tools-backend/lib/daily-log/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	dbmodels "stroy-tools-backend/models/db"
)

const (
	testCompanyID = "company-1"
	testOwnerID   = "owner-1"
	testAdminID   = "admin-1"
	testRecID     = "rec-1"
	testProjectID = "project-1"
)

type fakeStore struct {
	recs     map[string]*dbmodels.DailyLog
	replaced *dbmodels.DailyLog
}

func (f *fakeStore) Create(rec dbmodels.DailyLog) (string, error) { return rec.ID, nil }
func (f *fakeStore) GetByID(companyID, id string) (*dbmodels.DailyLog, error) {
	rec, exist := f.recs[id]
	if !exist || rec.CompanyID != companyID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}
func (f *fakeStore) Update(companyID, id string, updMap map[string]interface{}) error {
	f.apply(f.recs[id], updMap)
	return nil
}
func (f *fakeStore) UpdateWithStatus(companyID, id string, expected models.DailyLogStatus, updMap map[string]interface{}) (int64, error) {
	rec, exist := f.recs[id]
	if !exist || rec.Status != expected {
		return 0, nil
	}
	f.apply(rec, updMap)
	return 1, nil
}
func (f *fakeStore) Delete(companyID, id string) error {
	delete(f.recs, id)
	return nil
}
func (f *fakeStore) List(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) ([]dbmodels.DailyLog, error) {
	return nil, nil
}
func (f *fakeStore) ListCount(companyID string, scope models.VisibilityScope, filter dailylogapimodels.DailyLogFilter) (int64, error) {
	return 0, nil
}
func (f *fakeStore) ListPending(companyID, projectID string) ([]dbmodels.DailyLog, error) {
	return nil, nil
}
func (f *fakeStore) ReplaceChildren(rec dbmodels.DailyLog) error {
	f.replaced = &rec
	return nil
}

func (f *fakeStore) apply(rec *dbmodels.DailyLog, updMap map[string]interface{}) {
	if rec == nil {
		return
	}
	if v, ok := updMap["Status"]; ok {
		rec.Status = v.(models.DailyLogStatus)
	}
	if v, ok := updMap["Notes"]; ok {
		rec.Notes = v.(string)
	}
	if v, ok := updMap["ApprovedBy"]; ok {
		approvedBy := v.(string)
		rec.ApprovedBy = &approvedBy
	}
}

// резолвер с фиксированными уровнями по пользователям
type fakeResolver struct {
	levels map[string]models.Access
	scopes map[string]models.VisibilityScope
}

func (f fakeResolver) ResolveAccess(companyID, userID, projectID string, tool models.Tool) models.Access {
	if access, exist := f.levels[userID]; exist {
		return access
	}
	return models.Access{Level: models.AccessLevelNone}
}
func (f fakeResolver) DailyLogScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error) {
	if scope, exist := f.scopes[userID]; exist {
		return scope, nil
	}
	return models.ScopeOwnOnly(userID), nil
}
func (f fakeResolver) TimeEntryScope(companyID, userID string, role models.UserRole) (models.VisibilityScope, error) {
	return f.DailyLogScope(companyID, userID, role)
}

func newTestHandler(status models.DailyLogStatus) (impl, *fakeStore) {
	ownerID := testOwnerID
	store := &fakeStore{recs: map[string]*dbmodels.DailyLog{
		testRecID: {
			BaseCompanyModel: dbmodels.BaseCompanyModel{
				BaseModel: dbmodels.BaseModel{ID: testRecID},
				CompanyID: testCompanyID,
			},
			ProjectID:   testProjectID,
			SubmittedBy: &ownerID,
			Status:      status,
			Notes:       "смена прошла штатно",
		},
	}}
	handler := impl{
		store: store,
		resolver: fakeResolver{
			levels: map[string]models.Access{
				testOwnerID: {Level: models.AccessLevelMember},
				testAdminID: {IsOwnerAdmin: true, Level: models.AccessLevelAdmin},
			},
		},
		inTx: func(fn func(store dailylogstore.Provider) error) error {
			return fn(store)
		},
	}
	return handler, store
}

func requireCode(t *testing.T, err error, expected int) {
	t.Helper()
	require.NotNil(t, err)
	code, ok := apierrors.GetCode(err)
	require.True(t, ok, "ожидалась ошибка со статусом, получено: %v", err)
	require.Equal(t, expected, code)
}

func TestSubmit(t *testing.T) {
	t.Run(`черновик отправляется автором`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusDraft)
		err := handler.Submit(testCompanyID, testOwnerID, testRecID)
		require.Nil(t, err)
		require.Equal(t, models.DLStatusSubmitted, store.recs[testRecID].Status)
	})

	t.Run(`отклонённый отчёт можно отправить повторно`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusRejected)
		err := handler.Submit(testCompanyID, testOwnerID, testRecID)
		require.Nil(t, err)
		require.Equal(t, models.DLStatusSubmitted, store.recs[testRecID].Status)
	})

	t.Run(`повторная отправка отправленного отчёта - конфликт, не no-op`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusSubmitted)
		err := handler.Submit(testCompanyID, testOwnerID, testRecID)
		requireCode(t, err, fiber.StatusConflict)
	})

	t.Run(`согласованный отчёт нельзя отправить`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusApproved)
		err := handler.Submit(testCompanyID, testOwnerID, testRecID)
		requireCode(t, err, fiber.StatusConflict)
	})

	t.Run(`не автор отправить не может, даже администратор`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		err := handler.Submit(testCompanyID, testAdminID, testRecID)
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`несуществующий отчёт`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		err := handler.Submit(testCompanyID, testOwnerID, "missing")
		requireCode(t, err, fiber.StatusNotFound)
	})
}

func TestApprove(t *testing.T) {
	t.Run(`отправленный отчёт согласуется admin-уровнем`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusSubmitted)
		err := handler.Approve(testCompanyID, testAdminID, models.AdminRole, testRecID)
		require.Nil(t, err)
		rec := store.recs[testRecID]
		require.Equal(t, models.DLStatusApproved, rec.Status)
		require.NotNil(t, rec.ApprovedBy)
		require.Equal(t, testAdminID, *rec.ApprovedBy)
	})

	t.Run(`member согласовать не может`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusSubmitted)
		err := handler.Approve(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID)
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`черновик согласовать нельзя`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		err := handler.Approve(testCompanyID, testAdminID, models.AdminRole, testRecID)
		requireCode(t, err, fiber.StatusConflict)
	})
}

func TestReject(t *testing.T) {
	t.Run(`прямое отклонение переводит в REJECTED с пометкой`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusSubmitted)
		err := handler.Reject(testCompanyID, testAdminID, models.AdminRole, testRecID, "нет данных по бетону")
		require.Nil(t, err)
		rec := store.recs[testRecID]
		require.Equal(t, models.DLStatusRejected, rec.Status)
		// прежний текст сохраняется дословно, пометка дописывается новой строкой
		require.True(t, strings.HasPrefix(rec.Notes, "смена прошла штатно\n"+models.DLRejectNoteMark))
		require.True(t, strings.HasSuffix(rec.Notes, "нет данных по бетону"))
	})

	t.Run(`отклонение из очереди возвращает в черновик`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusSubmitted)
		err := handler.ReturnToDraft(testCompanyID, testAdminID, models.AdminRole, testRecID, "уточнить часы")
		require.Nil(t, err)
		rec := store.recs[testRecID]
		require.Equal(t, models.DLStatusDraft, rec.Status)
		require.Contains(t, rec.Notes, models.DLRejectNoteMark)
	})

	t.Run(`отклонить можно только отправленный отчёт`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusApproved)
		err := handler.Reject(testCompanyID, testAdminID, models.AdminRole, testRecID, "поздно")
		requireCode(t, err, fiber.StatusConflict)
	})
}

func TestAppendRejectNote(t *testing.T) {
	moment := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run(`пометка к пустым примечаниям`, func(t *testing.T) {
		notes := AppendRejectNote("", "мало деталей", moment)
		require.Equal(t, models.DLRejectNoteMark+" 2025-03-14 09:30: мало деталей", notes)
	})

	t.Run(`прежний текст сохраняется дословно`, func(t *testing.T) {
		notes := AppendRejectNote("заливка фундамента", "добавить объёмы", moment)
		require.Equal(t, "заливка фундамента\n"+models.DLRejectNoteMark+" 2025-03-14 09:30: добавить объёмы", notes)
	})
}

func TestUpdate(t *testing.T) {
	t.Run(`полное обновление с пустыми разделами очищает их`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusDraft)
		err := handler.Update(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID, dailylogapimodels.DailyLogData{
			ProjectID: testProjectID,
			Date:      "2025-03-14",
			Notes:     "разделы вычищены",
		})
		require.Nil(t, err)
		// разделы заменяются целиком: пустой массив в запросе - ноль строк в базе
		require.NotNil(t, store.replaced)
		require.Equal(t, testRecID, store.replaced.ID)
		require.Empty(t, store.replaced.Entries)
		require.Empty(t, store.replaced.Materials)
		require.Empty(t, store.replaced.Issues)
		require.Empty(t, store.replaced.Visitors)
		require.Equal(t, "разделы вычищены", store.recs[testRecID].Notes)
	})

	t.Run(`правка отклонённого отчёта автором возвращает его в черновик`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusRejected)
		err := handler.Update(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID, dailylogapimodels.DailyLogData{
			ProjectID: testProjectID,
			Date:      "2025-03-14",
			Entries:   []dailylogapimodels.EntryData{{Description: "армирование", Hours: 8}},
		})
		require.Nil(t, err)
		require.Equal(t, models.DLStatusDraft, store.recs[testRecID].Status)
		require.Len(t, store.replaced.Entries, 1)
	})

	t.Run(`согласованный отчёт не правится даже автором`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusApproved)
		err := handler.Update(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID, dailylogapimodels.DailyLogData{})
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`отправленный отчёт не правится автором`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusSubmitted)
		err := handler.Update(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID, dailylogapimodels.DailyLogData{})
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`чужой черновик не правится`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		err := handler.Update(testCompanyID, "stranger", models.FieldWorkerRole, testRecID, dailylogapimodels.DailyLogData{})
		requireCode(t, err, fiber.StatusForbidden)
	})
}

func TestDelete(t *testing.T) {
	t.Run(`автор удаляет собственный черновик`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusDraft)
		err := handler.Delete(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID)
		require.Nil(t, err)
		require.Empty(t, store.recs)
	})

	t.Run(`отправленный отчёт автор удалить не может`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusSubmitted)
		err := handler.Delete(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID)
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`администратор удаляет отчёт в любом статусе`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusApproved)
		err := handler.Delete(testCompanyID, testAdminID, models.AdminRole, testRecID)
		require.Nil(t, err)
		require.Empty(t, store.recs)
	})
}

func TestGetByID(t *testing.T) {
	t.Run(`автор видит свой отчёт при любой политике`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		item, err := handler.GetByID(testCompanyID, testOwnerID, models.FieldWorkerRole, testRecID)
		require.Nil(t, err)
		require.Equal(t, testRecID, item.ID)
	})

	t.Run(`чужой отчёт вне области видимости недоступен`, func(t *testing.T) {
		handler, _ := newTestHandler(models.DLStatusDraft)
		_, err := handler.GetByID(testCompanyID, "stranger", models.FieldWorkerRole, testRecID)
		requireCode(t, err, fiber.StatusForbidden)
	})

	t.Run(`отчёт по назначенному проекту виден`, func(t *testing.T) {
		handler, store := newTestHandler(models.DLStatusDraft)
		handler.resolver = fakeResolver{
			levels: map[string]models.Access{},
			scopes: map[string]models.VisibilityScope{
				"colleague": models.ScopeAssignedProjects("colleague", []string{testProjectID}),
			},
		}
		handler.store = store
		item, err := handler.GetByID(testCompanyID, "colleague", models.FieldWorkerRole, testRecID)
		require.Nil(t, err)
		require.Equal(t, testRecID, item.ID)
	})
}
