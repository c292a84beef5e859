package usershandler

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"stroy-tools-backend/db"
	usersstore "stroy-tools-backend/lib/company/users/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	"stroy-tools-backend/models"
	companyapimodels "stroy-tools-backend/models/api/company"
	dbmodels "stroy-tools-backend/models/db"
)

type Provider interface {
	Create(companyID string, data companyapimodels.UserData) (id string, err error)
	GetByID(companyID, id string) (item companyapimodels.UserView, err error)
	List(companyID string) (list []companyapimodels.UserView, err error)
	Update(companyID, id string, data companyapimodels.UserData) error
	ChangeRole(companyID, id string, data companyapimodels.ChangeRoleData) error
	Suspend(companyID, id string) error
	Delete(companyID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) getLogger(companyID, id string) *log.Entry {
	return log.
		WithField("company_id", companyID).
		WithField("rec_id", id)
}

func (i impl) Create(companyID string, data companyapimodels.UserData) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	exist, err := i.store.GetByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки почты")
		return "", err
	}
	if exist != nil {
		return "", apierrors.NewConflict("сотрудник с такой почтой уже зарегистрирован")
	}
	if data.Password == "" {
		return "", apierrors.NewBadRequest("не указан пароль")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return "", err
	}
	rec := dbmodels.User{
		Password:    string(hash),
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		CompanyID:   companyID,
		Role:        data.Role,
		Status:      models.UserActiveStatus,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания сотрудника")
		return "", err
	}
	logger.WithField("rec_id", id).Info("создан сотрудник")
	return id, nil
}

func (i impl) GetByID(companyID, id string) (companyapimodels.UserView, error) {
	rec, err := i.getRec(companyID, id)
	if err != nil {
		return companyapimodels.UserView{}, err
	}
	return companyapimodels.UserConvert(*rec), nil
}

func (i impl) List(companyID string) (list []companyapimodels.UserView, err error) {
	recList, err := i.store.List(companyID)
	if err != nil {
		log.WithField("company_id", companyID).
			WithError(err).
			Error("ошибка получения списка сотрудников")
		return nil, err
	}
	list = make([]companyapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, companyapimodels.UserConvert(rec))
	}
	return list, nil
}

func (i impl) Update(companyID, id string, data companyapimodels.UserData) error {
	logger := i.getLogger(companyID, id)
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"FirstName":   data.FirstName,
		"LastName":    data.LastName,
		"PhoneNumber": data.PhoneNumber,
	}
	if data.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.WithError(err).Error("ошибка хеширования пароля")
			return err
		}
		updMap["Password"] = string(hash)
	}
	err := i.store.Update(companyID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления сотрудника")
		return err
	}
	logger.Info("обновлён сотрудник")
	return nil
}

func (i impl) ChangeRole(companyID, id string, data companyapimodels.ChangeRoleData) error {
	logger := i.getLogger(companyID, id)
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	err := i.store.Update(companyID, id, map[string]interface{}{
		"Role": data.Role,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка смены роли")
		return err
	}
	logger.WithField("role", data.Role).Info("изменена роль сотрудника")
	return nil
}

func (i impl) Suspend(companyID, id string) error {
	logger := i.getLogger(companyID, id)
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	err := i.store.Update(companyID, id, map[string]interface{}{
		"Status": models.UserSuspendedStatus,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка блокировки сотрудника")
		return err
	}
	logger.Info("сотрудник заблокирован")
	return nil
}

func (i impl) Delete(companyID, id string) error {
	logger := i.getLogger(companyID, id)
	if _, err := i.getRec(companyID, id); err != nil {
		return err
	}
	err := i.store.Delete(companyID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления сотрудника")
		return err
	}
	logger.Info("удалён сотрудник")
	return nil
}

func (i impl) getRec(companyID, id string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.getLogger(companyID, id).
			WithError(err).
			Error("ошибка получения сотрудника")
		return nil, err
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, apierrors.NewNotFound("сотрудник не найден")
	}
	return rec, nil
}
