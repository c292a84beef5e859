package models

type DailyLogStatus string

const (
	DLStatusDraft     DailyLogStatus = "DRAFT"
	DLStatusSubmitted DailyLogStatus = "SUBMITTED"
	DLStatusApproved  DailyLogStatus = "APPROVED"
	DLStatusRejected  DailyLogStatus = "REJECTED"
)

var dlStatusHumanName = map[DailyLogStatus]string{
	DLStatusDraft:     "Черновик",
	DLStatusSubmitted: "На согласовании",
	DLStatusApproved:  "Согласован",
	DLStatusRejected:  "Отклонён",
}

func (s DailyLogStatus) ToHuman() string {
	if human, exist := dlStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowSubmit - отчёт может отправить на согласование только владелец
// и только из черновика или после отклонения
func (s DailyLogStatus) AllowSubmit() bool {
	return s == DLStatusDraft || s == DLStatusRejected
}

// AllowReview - согласовать/отклонить можно только отправленный отчёт
func (s DailyLogStatus) AllowReview() bool {
	return s == DLStatusSubmitted
}

// AllowOwnerEdit - владелец правит отчёт в черновике и после отклонения
func (s DailyLogStatus) AllowOwnerEdit() bool {
	return s == DLStatusDraft || s == DLStatusRejected
}

// AllowOwnerDelete - владелец удаляет только собственный черновик
func (s DailyLogStatus) AllowOwnerDelete() bool {
	return s == DLStatusDraft
}

// метка, добавляемая к примечаниям отчёта при отклонении
const DLRejectNoteMark = "[ОТКЛОНЕНО]"
