package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	apierrors "stroy-tools-backend/lib/utils/api-errors"
	apimodels "stroy-tools-backend/models/api"
)

type BaseAPIController struct{}

// BodyParser разбирает тело запроса с допуском camelCase-ключей от мобильных клиентов
func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := apimodels.UnmarshalTolerant(ctx.Body(), out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор записи")
	}
	return id, nil
}

// SendError - ошибки со статусом отдаются как есть, остальные как 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	if code, ok := apierrors.GetCode(err); ok {
		return ctx.Status(code).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
