package projecthandler

import (
	log "github.com/sirupsen/logrus"

	"stroy-tools-backend/db"
	accessresolver "stroy-tools-backend/lib/access"
	usersstore "stroy-tools-backend/lib/company/users/store"
	assignmentstore "stroy-tools-backend/lib/project/assignment-store"
	projectstore "stroy-tools-backend/lib/project/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	projectapimodels "stroy-tools-backend/models/api/project"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(companyID, userID string, data projectapimodels.ProjectData) (id string, err error)
	GetByID(companyID, userID, id string) (item projectapimodels.ProjectView, err error)
	Update(companyID, userID, id string, data projectapimodels.ProjectData) error
	Archive(companyID, userID, id string) error
	List(companyID string, filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error)
	Assign(companyID, userID, projectID string, data projectapimodels.AssignData) (id string, err error)
	Unassign(companyID, userID, projectID, memberID string) error
	ListAssignments(companyID, projectID string) (list []projectapimodels.AssignmentView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           projectstore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
		usersStore:      usersstore.NewInstance(db.DB),
		resolver:        accessresolver.Instance,
	}
}

type impl struct {
	store           projectstore.Provider
	assignmentStore assignmentstore.Provider
	usersStore      usersstore.Provider
	resolver        accessresolver.Provider
}

func (i impl) getLogger(companyID, id string) *log.Entry {
	return log.
		WithField("company_id", companyID).
		WithField("rec_id", id)
}

func (i impl) checkManageAccess(companyID, userID string) error {
	access := i.resolver.ResolveAccess(companyID, userID, "", models.ProjectsTool)
	if !access.HasAdminLevel() {
		return apierrors.NewForbidden("управление проектами доступно только администратору")
	}
	return nil
}

func (i impl) Create(companyID, userID string, data projectapimodels.ProjectData) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	if err = i.checkManageAccess(companyID, userID); err != nil {
		return "", err
	}
	rec := dbmodels.Project{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		Name:       data.Name,
		Code:       data.Code,
		Address:    data.Address,
		Customer:   data.Customer,
		Trades:     data.Trades,
		StartDate:  data.StartDate,
		FinishDate: data.FinishDate,
		IsActive:   true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания проекта")
		return "", err
	}
	logger.WithField("rec_id", id).Info("создан проект")
	return id, nil
}

func (i impl) GetByID(companyID, userID, id string) (projectapimodels.ProjectView, error) {
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	access := i.resolver.ResolveAccess(companyID, userID, id, models.ProjectsTool)
	if access.Level == models.AccessLevelNone {
		return projectapimodels.ProjectView{}, apierrors.NewForbidden("нет доступа к проекту")
	}
	return projectapimodels.ProjectConvert(*rec), nil
}

func (i impl) Update(companyID, userID, id string, data projectapimodels.ProjectData) error {
	logger := i.getLogger(companyID, id)
	if err := i.checkManageAccess(companyID, userID); err != nil {
		return err
	}
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"Name":       data.Name,
		"Code":       data.Code,
		"Address":    data.Address,
		"Customer":   data.Customer,
		"Trades":     data.Trades,
		"StartDate":  data.StartDate,
		"FinishDate": data.FinishDate,
	}
	err := i.store.Update(companyID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления проекта")
		return err
	}
	logger.Info("обновлён проект")
	return nil
}

// Archive - проект не удаляется, а помечается неактивным, история по нему остаётся
func (i impl) Archive(companyID, userID, id string) error {
	logger := i.getLogger(companyID, id)
	if err := i.checkManageAccess(companyID, userID); err != nil {
		return err
	}
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	err := i.store.Update(companyID, id, map[string]interface{}{
		"IsActive": false,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка архивации проекта")
		return err
	}
	logger.Info("проект переведён в архив")
	return nil
}

func (i impl) List(companyID string, filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(companyID, filter)
	if err != nil {
		log.WithField("company_id", companyID).
			WithError(err).
			Error("ошибка получения списка проектов")
		return nil, 0, err
	}
	result := make([]projectapimodels.ProjectView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, projectapimodels.ProjectConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Assign(companyID, userID, projectID string, data projectapimodels.AssignData) (id string, err error) {
	logger := i.getLogger(companyID, projectID).WithField("user_id", data.UserID)
	if err = i.checkManageAccess(companyID, userID); err != nil {
		return "", err
	}
	if _, err = i.getRec(companyID, projectID); err != nil {
		return "", err
	}
	member, err := i.usersStore.GetByID(data.UserID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудника")
		return "", err
	}
	if member == nil || member.CompanyID != companyID {
		return "", apierrors.NewNotFound("сотрудник не найден")
	}
	exist, err := i.assignmentStore.Get(companyID, projectID, data.UserID)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки назначения")
		return "", err
	}
	if exist != nil {
		// повторное назначение - no-op, возвращаем существующую запись
		return exist.ID, nil
	}
	id, err = i.assignmentStore.Create(dbmodels.ProjectAssignment{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		ProjectID:  projectID,
		UserID:     data.UserID,
		AssignedBy: userID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка назначения на проект")
		return "", err
	}
	logger.Info("сотрудник назначен на проект")
	return id, nil
}

func (i impl) Unassign(companyID, userID, projectID, memberID string) error {
	logger := i.getLogger(companyID, projectID).WithField("user_id", memberID)
	if err := i.checkManageAccess(companyID, userID); err != nil {
		return err
	}
	err := i.assignmentStore.Delete(companyID, projectID, memberID)
	if err != nil {
		logger.WithError(err).Error("ошибка снятия с проекта")
		return err
	}
	logger.Info("сотрудник снят с проекта")
	return nil
}

func (i impl) ListAssignments(companyID, projectID string) (list []projectapimodels.AssignmentView, err error) {
	recList, err := i.assignmentStore.ListByProject(companyID, projectID)
	if err != nil {
		i.getLogger(companyID, projectID).
			WithError(err).
			Error("ошибка получения назначений проекта")
		return nil, err
	}
	list = make([]projectapimodels.AssignmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, projectapimodels.AssignmentConvert(rec))
	}
	return list, nil
}

func (i impl) getRec(companyID, id string) (*dbmodels.Project, error) {
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		i.getLogger(companyID, id).
			WithError(err).
			Error("ошибка получения проекта")
		return nil, err
	}
	if rec == nil {
		return nil, apierrors.NewNotFound("проект не найден")
	}
	return rec, nil
}
