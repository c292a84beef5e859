package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	xlsexport "stroy-tools-backend/lib/export/xls"
	timeentryhandler "stroy-tools-backend/lib/time-entry"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
)

type reportController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportController{}
	app.Route("reports", func(reportsRootRoute fiber.Router) {
		reportsRootRoute.Use(middleware.AuthorizationRequired())
		reportsRootRoute.Use(middleware.RbacMiddleware())
		reportsRootRoute.Post("time_entries/xlsx", controller.ExportTimeReport)
	})
}

// @Summary Выгрузить табель в XLSX
// @Tags Отчёты
// @Description Табель учёта времени по заданному фильтру
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		timeentryapimodels.TimeEntryFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/time_entries/xlsx [post]
func (c *reportController) ExportTimeReport(ctx *fiber.Ctx) error {
	var payload timeentryapimodels.TimeEntryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	// выгружаем всё, что попало под фильтр
	if payload.Limit == 0 {
		payload.Limit = 100
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, _, err := timeentryhandler.Instance.List(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportTimeReport(list)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="time_report.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
