package models

type UserRole string

const (
	AdminRole          UserRole = "ADMIN"
	ProjectManagerRole UserRole = "PROJECT_MANAGER"
	SuperintendentRole UserRole = "SUPERINTENDENT"
	MechanicRole       UserRole = "MECHANIC"
	FieldWorkerRole    UserRole = "FIELD_WORKER"
	ViewerRole         UserRole = "VIEWER"
)

var roleHumanName = map[UserRole]string{
	AdminRole:          "Администратор",
	ProjectManagerRole: "Руководитель проекта",
	SuperintendentRole: "Прораб",
	MechanicRole:       "Механик",
	FieldWorkerRole:    "Рабочий",
	ViewerRole:         "Наблюдатель",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// владелец-администратор имеет безусловный доступ ко всем записям компании
func (r UserRole) IsOwnerAdmin() bool {
	return r == AdminRole
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

// роли с доступом к очереди согласования
var ApproverRoleSet = []UserRole{AdminRole, ProjectManagerRole, SuperintendentRole}

func (r UserRole) IsApprover() bool {
	for _, role := range ApproverRoleSet {
		if r == role {
			return true
		}
	}
	return false
}

const SystemUser = "Система"

type UserStatus string

const (
	UserActiveStatus    UserStatus = "ACTIVE"
	UserSuspendedStatus UserStatus = "SUSPENDED"
)

var userStatusHumanName = map[UserStatus]string{
	UserActiveStatus:    "Работает",
	UserSuspendedStatus: "Отстранён",
}

func (r UserStatus) ToHuman() string {
	if human, exist := userStatusHumanName[r]; exist {
		return human
	}
	return string(r)
}
