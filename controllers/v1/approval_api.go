package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	approvalhandler "stroy-tools-backend/lib/approval"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	approvalapimodels "stroy-tools-backend/models/api/approval"
)

type approvalController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalController{}
	app.Route("approvals", func(approvalsRootRoute fiber.Router) {
		approvalsRootRoute.Use(middleware.AuthorizationRequired())
		approvalsRootRoute.Use(middleware.RbacMiddleware())
		approvalsRootRoute.Post("pending", controller.ListPending)
		approvalsRootRoute.Post("decision", controller.Decide)
		approvalsRootRoute.Post("bulk_decision", controller.BulkDecide)
	})
}

// @Summary Получить очередь согласования
// @Tags Согласование
// @Description Очередь согласования: записи учёта времени и дневные отчёты, ожидающие решения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.PendingFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.PendingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/pending [post]
func (c *approvalController) ListPending(ctx *fiber.Ctx) error {
	var payload approvalapimodels.PendingFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	item, err := approvalhandler.Instance.ListPending(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Принять решение по элементу очереди
// @Tags Согласование
// @Description Согласовать или отклонить запись учёта времени либо дневной отчёт
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.DecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/decision [post]
func (c *approvalController) Decide(ctx *fiber.Ctx) error {
	var payload approvalapimodels.DecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err := approvalhandler.Instance.Decide(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Пакетное решение по очереди
// @Tags Согласование
// @Description Решения принимаются по каждому элементу независимо, в ответе итог по каждому
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		approvalapimodels.BulkDecisionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.BulkResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/bulk_decision [post]
func (c *approvalController) BulkDecide(ctx *fiber.Ctx) error {
	var payload approvalapimodels.BulkDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	result, err := approvalhandler.Instance.BulkDecide(companyID, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
