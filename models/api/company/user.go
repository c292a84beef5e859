package companyapimodels

import (
	"strings"

	"github.com/pkg/errors"

	"stroy-tools-backend/models"
	dbmodels "stroy-tools-backend/models/db"
)

type UserData struct {
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	Role        models.UserRole `json:"role"`
	Password    string          `json:"password,omitempty"`
}

func (r UserData) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("не указана почта")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("не указано имя")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", r.Role)
	}
	return nil
}

type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	RoleName    string `json:"role_name"`
	Status      string `json:"status"`
	StatusName  string `json:"status_name"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:          rec.ID,
		Email:       rec.Email,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		PhoneNumber: rec.PhoneNumber,
		Role:        string(rec.Role),
		RoleName:    rec.Role.ToHuman(),
		Status:      string(rec.Status),
		StatusName:  rec.Status.ToHuman(),
	}
}

// ChangeRoleData - смену роли выполняет только администратор
type ChangeRoleData struct {
	Role models.UserRole `json:"role"`
}

func (r ChangeRoleData) Validate() error {
	if !r.Role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", r.Role)
	}
	return nil
}
