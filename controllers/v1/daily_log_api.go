package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	dailyloghandler "stroy-tools-backend/lib/daily-log"
	pdfexport "stroy-tools-backend/lib/export/pdf"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
)

type dailyLogController struct {
	controllers.BaseAPIController
}

func InitDailyLogApiRouters(app *fiber.App) {
	controller := dailyLogController{}
	app.Route("daily_logs", func(dailyLogsRootRoute fiber.Router) {
		dailyLogsRootRoute.Use(middleware.AuthorizationRequired())
		dailyLogsRootRoute.Use(middleware.RbacMiddleware())
		dailyLogsRootRoute.Post("", controller.CreateDailyLog)
		dailyLogsRootRoute.Post("list", controller.ListDailyLogs)
		dailyLogsRootRoute.Route(":id", func(dailyLogsIDRoute fiber.Router) {
			dailyLogsIDRoute.Get("", controller.GetDailyLogByID)
			dailyLogsIDRoute.Put("", controller.UpdateDailyLog)
			dailyLogsIDRoute.Delete("", controller.DeleteDailyLog)
			dailyLogsIDRoute.Put("submit", controller.Submit)
			dailyLogsIDRoute.Put("approve", controller.Approve)
			dailyLogsIDRoute.Put("reject", controller.Reject)
			dailyLogsIDRoute.Get("pdf", controller.ExportPdf)
		})
	})
}

// @Summary Создать дневной отчёт
// @Tags Дневные отчёты
// @Description Создать дневной отчёт в статусе черновика
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dailylogapimodels.DailyLogData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs [post]
func (c *dailyLogController) CreateDailyLog(ctx *fiber.Ctx) error {
	var payload dailylogapimodels.DailyLogData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := dailyloghandler.Instance.Create(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Получить список дневных отчётов
// @Tags Дневные отчёты
// @Description Получить список дневных отчётов с учётом видимости по роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dailylogapimodels.DailyLogFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dailylogapimodels.DailyLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/list [post]
func (c *dailyLogController) ListDailyLogs(ctx *fiber.Ctx) error {
	var payload dailylogapimodels.DailyLogFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, rowCount, err := dailyloghandler.Instance.List(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получить дневной отчёт по ID
// @Tags Дневные отчёты
// @Description Получить дневной отчёт со всеми разделами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Success 200 {object} apimodels.Response{data=dailylogapimodels.DailyLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id} [get]
func (c *dailyLogController) GetDailyLogByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	item, err := dailyloghandler.Instance.GetByID(companyID, userID, role, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновить дневной отчёт
// @Tags Дневные отчёты
// @Description Полное обновление отчёта, разделы заменяются целиком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Param	body				body		dailylogapimodels.DailyLogData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id} [put]
func (c *dailyLogController) UpdateDailyLog(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dailylogapimodels.DailyLogData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = dailyloghandler.Instance.Update(companyID, userID, role, id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить дневной отчёт
// @Tags Дневные отчёты
// @Description Автор удаляет только собственный черновик, администратор - любой отчёт
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id} [delete]
func (c *dailyLogController) DeleteDailyLog(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = dailyloghandler.Instance.Delete(companyID, userID, role, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить отчёт на согласование
// @Tags Дневные отчёты
// @Description Отправить отчёт на согласование может только его автор
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id}/submit [put]
func (c *dailyLogController) Submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	err = dailyloghandler.Instance.Submit(companyID, userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать отчёт
// @Tags Дневные отчёты
// @Description Согласовать отправленный отчёт
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id}/approve [put]
func (c *dailyLogController) Approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = dailyloghandler.Instance.Approve(companyID, userID, role, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить отчёт
// @Tags Дневные отчёты
// @Description Отклонить отправленный отчёт с замечанием проверяющего
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Param	body				body		dailylogapimodels.DecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id}/reject [put]
func (c *dailyLogController) Reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dailylogapimodels.DecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = dailyloghandler.Instance.Reject(companyID, userID, role, id, payload.Note)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузить отчёт в PDF
// @Tags Дневные отчёты
// @Description Печатная форма дневного отчёта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"daily log ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_logs/{id}/pdf [get]
func (c *dailyLogController) ExportPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	item, err := dailyloghandler.Instance.GetByID(companyID, userID, role, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	pdfFile, err := pdfexport.GenerateDailyLog(item)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="daily_log_%v.pdf"`, item.Date))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
