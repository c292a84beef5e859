package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	timeentryhandler "stroy-tools-backend/lib/time-entry"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
)

type timeEntryController struct {
	controllers.BaseAPIController
}

func InitTimeEntryApiRouters(app *fiber.App) {
	controller := timeEntryController{}
	app.Route("time_entries", func(timeEntriesRootRoute fiber.Router) {
		timeEntriesRootRoute.Use(middleware.AuthorizationRequired())
		timeEntriesRootRoute.Use(middleware.RbacMiddleware())
		timeEntriesRootRoute.Post("clock_in", controller.ClockIn)
		timeEntriesRootRoute.Post("clock_out", controller.ClockOut)
		timeEntriesRootRoute.Get("open", controller.GetOpen)
		timeEntriesRootRoute.Post("list", controller.ListTimeEntries)
		timeEntriesRootRoute.Route(":id", func(timeEntriesIDRoute fiber.Router) {
			timeEntriesIDRoute.Put("approve", controller.Approve)
			timeEntriesIDRoute.Put("reject", controller.Reject)
		})
	})
}

// @Summary Открыть смену
// @Tags Учёт времени
// @Description Открыть смену на проекте, вторая открытая смена не допускается
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		timeentryapimodels.ClockInData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/clock_in [post]
func (c *timeEntryController) ClockIn(ctx *fiber.Ctx) error {
	var payload timeentryapimodels.ClockInData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := timeentryhandler.Instance.ClockIn(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Завершить смену
// @Tags Учёт времени
// @Description Завершить открытую смену, запись уходит в очередь согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=timeentryapimodels.TimeEntryView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/clock_out [post]
func (c *timeEntryController) ClockOut(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	item, err := timeentryhandler.Instance.ClockOut(companyID, userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Получить открытую смену
// @Tags Учёт времени
// @Description Получить текущую открытую смену сотрудника, null если смены нет
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=timeentryapimodels.TimeEntryView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/open [get]
func (c *timeEntryController) GetOpen(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	item, err := timeentryhandler.Instance.GetOpen(companyID, userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Получить список записей учёта времени
// @Tags Учёт времени
// @Description Получить список записей с учётом видимости по роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		timeentryapimodels.TimeEntryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]timeentryapimodels.TimeEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/list [post]
func (c *timeEntryController) ListTimeEntries(ctx *fiber.Ctx) error {
	var payload timeentryapimodels.TimeEntryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, rowCount, err := timeentryhandler.Instance.List(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Согласовать запись учёта времени
// @Tags Учёт времени
// @Description Согласовать завершённую запись учёта времени
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"time entry ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/{id}/approve [put]
func (c *timeEntryController) Approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = timeentryhandler.Instance.Approve(companyID, userID, role, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить запись учёта времени
// @Tags Учёт времени
// @Description Отклонить завершённую запись учёта времени
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"time entry ID"
// @Param	body				body		dailylogapimodels.DecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time_entries/{id}/reject [put]
func (c *timeEntryController) Reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := struct {
		Note string `json:"note"`
	}{}
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = timeentryhandler.Instance.Reject(companyID, userID, role, id, payload.Note)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
