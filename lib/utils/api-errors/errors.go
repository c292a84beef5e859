package apierrors

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// ошибка с HTTP-статусом; всё остальное контроллеры отдают как 500
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func New(code int, message string) error {
	return &StatusError{Code: code, Message: message}
}

func NewForbidden(message string) error {
	return New(fiber.StatusForbidden, message)
}

func NewNotFound(message string) error {
	return New(fiber.StatusNotFound, message)
}

func NewBadRequest(message string) error {
	return New(fiber.StatusBadRequest, message)
}

// конфликт конкурентного изменения статуса
func NewConflict(message string) error {
	return New(fiber.StatusConflict, message)
}

func GetCode(err error) (code int, ok bool) {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.Code, true
	}
	return 0, false
}
