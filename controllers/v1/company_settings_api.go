package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	companysettingshandler "stroy-tools-backend/lib/company-settings"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	companyapimodels "stroy-tools-backend/models/api/company"
)

type companySettingsController struct {
	controllers.BaseAPIController
}

func InitCompanySettingsApiRouters(app *fiber.App) {
	controller := companySettingsController{}
	app.Route("company_settings", func(settingsRootRoute fiber.Router) {
		settingsRootRoute.Use(middleware.AuthorizationRequired())
		settingsRootRoute.Use(middleware.RbacMiddleware())
		settingsRootRoute.Get("", controller.GetSettings)
		settingsRootRoute.Put("role_access", controller.UpdateRoleAccess)
	})
}

// @Summary Получить настройки компании
// @Tags Настройки компании
// @Description Политики видимости и уровни доступа по ролям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=companyapimodels.RoleAccessView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company_settings [get]
func (c *companySettingsController) GetSettings(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	rec, err := companysettingshandler.Instance.Get(companyID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(companyapimodels.SettingConvert(rec)))
}

// @Summary Обновить настройки доступа роли
// @Tags Настройки компании
// @Description Обновить политику видимости и уровни доступа для роли, доступно только администратору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		companyapimodels.RoleAccessUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company_settings/role_access [put]
func (c *companySettingsController) UpdateRoleAccess(ctx *fiber.Ctx) error {
	var payload companyapimodels.RoleAccessUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err := companysettingshandler.Instance.UpdateRoleAccess(companyID, payload.Role, payload.Access)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
