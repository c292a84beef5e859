package models

type TimeEntryStatus string

const (
	TEStatusPending  TimeEntryStatus = "PENDING"
	TEStatusApproved TimeEntryStatus = "APPROVED"
	TEStatusRejected TimeEntryStatus = "REJECTED"
)

var teStatusHumanName = map[TimeEntryStatus]string{
	TEStatusPending:  "Ожидает согласования",
	TEStatusApproved: "Согласована",
	TEStatusRejected: "Отклонена",
}

func (s TimeEntryStatus) ToHuman() string {
	if human, exist := teStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowReview - решение принимается только по записи в ожидании
func (s TimeEntryStatus) AllowReview() bool {
	return s == TEStatusPending
}

// ApprovalItemType - тип элемента в очереди согласования
type ApprovalItemType string

const (
	ApprovalItemTimeEntry ApprovalItemType = "time_entry"
	ApprovalItemDailyLog  ApprovalItemType = "daily_log"
)

func (t ApprovalItemType) IsValid() bool {
	return t == ApprovalItemTimeEntry || t == ApprovalItemDailyLog
}
