package dailyloghandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stroy-tools-backend/db"
	accessresolver "stroy-tools-backend/lib/access"
	dailylogstore "stroy-tools-backend/lib/daily-log/store"
	projectstore "stroy-tools-backend/lib/project/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(companyID, userID string, data dailylogapimodels.DailyLogData) (id string, err error)
	GetByID(companyID, userID string, role models.UserRole, id string) (item dailylogapimodels.DailyLogView, err error)
	Update(companyID, userID string, role models.UserRole, id string, data dailylogapimodels.DailyLogData) error
	Delete(companyID, userID string, role models.UserRole, id string) error
	List(companyID, userID string, role models.UserRole, filter dailylogapimodels.DailyLogFilter) (list []dailylogapimodels.DailyLogView, rowCount int64, err error)
	Submit(companyID, userID, id string) error
	Approve(companyID, reviewerID string, role models.UserRole, id string) error
	Reject(companyID, reviewerID string, role models.UserRole, id, note string) error
	// ReturnToDraft - отклонение из очереди согласования: отчёт возвращается в черновик
	ReturnToDraft(companyID, reviewerID string, role models.UserRole, id, note string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        dailylogstore.NewInstance(db.DB),
		projectStore: projectstore.NewInstance(db.DB),
		resolver:     accessresolver.Instance,
		inTx: func(fn func(store dailylogstore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(dailylogstore.NewInstance(tx))
			})
		},
	}
}

type impl struct {
	store        dailylogstore.Provider
	projectStore projectstore.Provider
	resolver     accessresolver.Provider
	// запись отчёта вместе с разделами выполняется в одной транзакции
	inTx func(fn func(store dailylogstore.Provider) error) error
}

func (i impl) getLogger(companyID, id string) *log.Entry {
	return log.
		WithField("company_id", companyID).
		WithField("rec_id", id)
}

func (i impl) Create(companyID, userID string, data dailylogapimodels.DailyLogData) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	access := i.resolver.ResolveAccess(companyID, userID, data.ProjectID, models.DailyLogsTool)
	if access.Level == models.AccessLevelNone {
		return "", apierrors.NewForbidden("нет доступа к дневным отчётам проекта")
	}
	project, err := i.projectStore.GetByID(companyID, data.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apierrors.NewNotFound("проект не найден")
	}
	date, err := data.GetDate()
	if err != nil {
		return "", apierrors.NewBadRequest(err.Error())
	}
	rec := dbmodels.DailyLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		ProjectID:    data.ProjectID,
		SubmittedBy:  &userID,
		Date:         date,
		Status:       models.DLStatusDraft,
		Notes:        data.Notes,
		CrewCount:    data.CrewCount,
		TotalHours:   data.TotalHours(),
		WeatherDelay: data.WeatherDelay,
		Weather:      data.Weather,
		TemperatureC: data.TemperatureC,
	}
	fillChildren(&rec, data)

	err = i.inTx(func(store dailylogstore.Provider) error {
		id, err = store.Create(rec)
		if err != nil {
			logger.
				WithField("request", fmt.Sprintf("%+v", data)).
				WithError(err).
				Error("ошибка создания дневного отчёта")
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создан дневной отчёт")
	return id, nil
}

func (i impl) GetByID(companyID, userID string, role models.UserRole, id string) (dailylogapimodels.DailyLogView, error) {
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return dailylogapimodels.DailyLogView{}, err
	}
	visible, err := i.isVisible(companyID, userID, role, *rec)
	if err != nil {
		return dailylogapimodels.DailyLogView{}, err
	}
	if !visible {
		return dailylogapimodels.DailyLogView{}, apierrors.NewForbidden("нет доступа к отчёту")
	}
	return dailylogapimodels.DailyLogConvert(*rec), nil
}

// Update - полное обновление: дочерние записи удаляются и создаются заново из запроса.
// Правка отклонённого отчёта владельцем возвращает его в черновик.
func (i impl) Update(companyID, userID string, role models.UserRole, id string, data dailylogapimodels.DailyLogData) error {
	logger := i.getLogger(companyID, id)
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return err
	}
	access := i.resolver.ResolveAccess(companyID, userID, rec.ProjectID, models.DailyLogsTool)
	if rec.Status == models.DLStatusApproved || rec.Status == models.DLStatusSubmitted {
		// согласованный и отправленный отчёты правит только админ-уровень, владелец в том числе не может
		if !access.HasAdminLevel() {
			return apierrors.NewForbidden("изменение отчёта в текущем статусе доступно только администратору")
		}
	} else {
		if !access.HasAdminLevel() && !rec.IsOwner(userID) {
			return apierrors.NewForbidden("отчёт может изменять только его автор")
		}
	}
	date, err := data.GetDate()
	if err != nil {
		return apierrors.NewBadRequest(err.Error())
	}

	newStatus := rec.Status
	if rec.Status == models.DLStatusRejected && rec.IsOwner(userID) {
		newStatus = models.DLStatusDraft
	}
	updMap := map[string]interface{}{
		"Date":         date,
		"Notes":        data.Notes,
		"CrewCount":    data.CrewCount,
		"TotalHours":   data.TotalHours(),
		"WeatherDelay": data.WeatherDelay,
		"Weather":      data.Weather,
		"TemperatureC": data.TemperatureC,
		"Status":       newStatus,
	}
	updated := dbmodels.DailyLog{BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: id}}}
	fillChildren(&updated, data)

	err = i.inTx(func(store dailylogstore.Provider) error {
		if err := store.Update(companyID, id, updMap); err != nil {
			return err
		}
		return store.ReplaceChildren(updated)
	})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления дневного отчёта")
		return err
	}
	logger.Info("обновлён дневной отчёт")
	return nil
}

func (i impl) Delete(companyID, userID string, role models.UserRole, id string) error {
	logger := i.getLogger(companyID, id)
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return err
	}
	access := i.resolver.ResolveAccess(companyID, userID, rec.ProjectID, models.DailyLogsTool)
	if !access.HasAdminLevel() {
		// владелец удаляет только собственный черновик
		if !rec.IsOwner(userID) || !rec.Status.AllowOwnerDelete() {
			return apierrors.NewForbidden("удаление отчёта недоступно")
		}
	}
	err = i.store.Delete(companyID, id)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка удаления дневного отчёта")
		return err
	}
	logger.Info("удалён дневной отчёт")
	return nil
}

func (i impl) List(companyID, userID string, role models.UserRole, filter dailylogapimodels.DailyLogFilter) (list []dailylogapimodels.DailyLogView, rowCount int64, err error) {
	logger := log.WithField("company_id", companyID)
	scope, err := i.resolver.DailyLogScope(companyID, userID, role)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(companyID, scope, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []dailylogapimodels.DailyLogView{}, rowCount, nil
	}

	recList, err := i.store.List(companyID, scope, filter)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения списка дневных отчётов")
		return nil, 0, err
	}
	result := make([]dailylogapimodels.DailyLogView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dailylogapimodels.DailyLogConvert(rec))
	}
	return result, rowCount, nil
}

// Submit - отправить на согласование может только автор отчёта.
// Повторная отправка уже отправленного или согласованного отчёта - ошибка, не no-op.
func (i impl) Submit(companyID, userID, id string) error {
	logger := i.getLogger(companyID, id)
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return err
	}
	if !rec.IsOwner(userID) {
		return apierrors.NewForbidden("отправить отчёт на согласование может только его автор")
	}
	if !rec.Status.AllowSubmit() {
		return apierrors.NewConflict(fmt.Sprintf("отчёт в статусе %v нельзя отправить на согласование", rec.Status.ToHuman()))
	}
	updMap := map[string]interface{}{
		"Status": models.DLStatusSubmitted,
	}
	rowsAffected, err := i.store.UpdateWithStatus(companyID, id, rec.Status, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки отчёта на согласование")
		return err
	}
	if rowsAffected == 0 {
		return apierrors.NewConflict("статус отчёта изменён другим запросом")
	}
	logger.Info("отчёт отправлен на согласование")
	return nil
}

func (i impl) Approve(companyID, reviewerID string, role models.UserRole, id string) error {
	logger := i.getLogger(companyID, id).WithField("user_id", reviewerID)
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return err
	}
	if err = i.checkReviewAccess(companyID, reviewerID, rec.ProjectID); err != nil {
		return err
	}
	if !rec.Status.AllowReview() {
		return apierrors.NewConflict(fmt.Sprintf("невозможно согласовать отчёт в текущем статусе: %v", rec.Status.ToHuman()))
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"Status":     models.DLStatusApproved,
		"ApprovedBy": reviewerID,
		"ApprovedAt": now,
	}
	rowsAffected, err := i.store.UpdateWithStatus(companyID, id, models.DLStatusSubmitted, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка согласования отчёта")
		return err
	}
	if rowsAffected == 0 {
		return apierrors.NewConflict("статус отчёта изменён другим запросом")
	}
	logger.Info("отчёт согласован")
	return nil
}

func (i impl) Reject(companyID, reviewerID string, role models.UserRole, id, note string) error {
	return i.reject(companyID, reviewerID, id, note, models.DLStatusRejected)
}

func (i impl) ReturnToDraft(companyID, reviewerID string, role models.UserRole, id, note string) error {
	return i.reject(companyID, reviewerID, id, note, models.DLStatusDraft)
}

func (i impl) reject(companyID, reviewerID, id, note string, toStatus models.DailyLogStatus) error {
	logger := i.getLogger(companyID, id).WithField("user_id", reviewerID)
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return err
	}
	if err = i.checkReviewAccess(companyID, reviewerID, rec.ProjectID); err != nil {
		return err
	}
	if !rec.Status.AllowReview() {
		return apierrors.NewConflict(fmt.Sprintf("невозможно отклонить отчёт в текущем статусе: %v", rec.Status.ToHuman()))
	}
	updMap := map[string]interface{}{
		"Status": toStatus,
		"Notes":  AppendRejectNote(rec.Notes, note, time.Now()),
	}
	rowsAffected, err := i.store.UpdateWithStatus(companyID, id, models.DLStatusSubmitted, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка отклонения отчёта")
		return err
	}
	if rowsAffected == 0 {
		return apierrors.NewConflict("статус отчёта изменён другим запросом")
	}
	logger.Info("отчёт отклонён")
	return nil
}

// AppendRejectNote дописывает замечание проверяющего к примечаниям,
// прежний текст сохраняется дословно
func AppendRejectNote(notes, note string, moment time.Time) string {
	line := fmt.Sprintf("%s %s: %s", models.DLRejectNoteMark, moment.Format("2006-01-02 15:04"), note)
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

func (i impl) checkReviewAccess(companyID, reviewerID, projectID string) error {
	access := i.resolver.ResolveAccess(companyID, reviewerID, projectID, models.DailyLogsTool)
	if !access.HasAdminLevel() {
		return apierrors.NewForbidden("решение по отчёту принимает администратор или роль с правами администратора")
	}
	return nil
}

func (i impl) isVisible(companyID, userID string, role models.UserRole, rec dbmodels.DailyLog) (bool, error) {
	if rec.IsOwner(userID) {
		return true, nil
	}
	scope, err := i.resolver.DailyLogScope(companyID, userID, role)
	if err != nil {
		return false, err
	}
	if scope.Unrestricted {
		return true, nil
	}
	for _, projectID := range scope.ProjectIDs {
		if projectID == rec.ProjectID {
			return true, nil
		}
	}
	return false, nil
}

func (i impl) getRec(companyID, id string) (*dbmodels.DailyLog, error) {
	logger := i.getLogger(companyID, id)
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения дневного отчёта")
		return nil, err
	}
	if rec == nil {
		return nil, apierrors.NewNotFound("отчёт не найден")
	}
	return rec, nil
}

func fillChildren(rec *dbmodels.DailyLog, data dailylogapimodels.DailyLogData) {
	rec.Entries = make([]dbmodels.DailyLogEntry, 0, len(data.Entries))
	for _, entry := range data.Entries {
		rec.Entries = append(rec.Entries, dbmodels.DailyLogEntry{
			Description: entry.Description,
			Trade:       entry.Trade,
			CrewCount:   entry.CrewCount,
			Hours:       entry.Hours,
		})
	}
	rec.Materials = make([]dbmodels.DailyLogMaterial, 0, len(data.Materials))
	for _, material := range data.Materials {
		rec.Materials = append(rec.Materials, dbmodels.DailyLogMaterial{
			Name:     material.Name,
			Quantity: material.Quantity,
			Unit:     material.Unit,
			Supplier: material.Supplier,
		})
	}
	rec.Issues = make([]dbmodels.DailyLogIssue, 0, len(data.Issues))
	for _, issue := range data.Issues {
		rec.Issues = append(rec.Issues, dbmodels.DailyLogIssue{
			Description: issue.Description,
			IsResolved:  issue.IsResolved,
		})
	}
	rec.Visitors = make([]dbmodels.DailyLogVisitor, 0, len(data.Visitors))
	for _, visitor := range data.Visitors {
		rec.Visitors = append(rec.Visitors, dbmodels.DailyLogVisitor{
			Name:         visitor.Name,
			Organization: visitor.Organization,
			Purpose:      visitor.Purpose,
		})
	}
}
