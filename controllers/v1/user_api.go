package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	usershandler "stroy-tools-backend/lib/company/users"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	companyapimodels "stroy-tools-backend/models/api/company"
)

type userController struct {
	controllers.BaseAPIController
}

func InitUserApiRouters(app *fiber.App) {
	controller := userController{}
	app.Route("users", func(usersRootRoute fiber.Router) {
		usersRootRoute.Use(middleware.AuthorizationRequired())
		usersRootRoute.Use(middleware.RbacMiddleware())
		usersRootRoute.Post("", controller.CreateUser)
		usersRootRoute.Get("", controller.ListUsers)
		usersRootRoute.Route(":id", func(usersIDRoute fiber.Router) {
			usersIDRoute.Get("", controller.GetUserByID)
			usersIDRoute.Put("", controller.UpdateUser)
			usersIDRoute.Delete("", controller.DeleteUser)
			usersIDRoute.Put("change_role", controller.ChangeRole)
			usersIDRoute.Put("suspend", controller.Suspend)
		})
	})
}

// @Summary Создать сотрудника
// @Tags Сотрудники
// @Description Создать сотрудника компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		companyapimodels.UserData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [post]
func (c *userController) CreateUser(ctx *fiber.Ctx) error {
	var payload companyapimodels.UserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	id, err := usershandler.Instance.Create(companyID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Получить список сотрудников
// @Tags Сотрудники
// @Description Получить список сотрудников компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]companyapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [get]
func (c *userController) ListUsers(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	list, err := usershandler.Instance.List(companyID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получить сотрудника по ID
// @Tags Сотрудники
// @Description Получить сотрудника по ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"user ID"
// @Success 200 {object} apimodels.Response{data=companyapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [get]
func (c *userController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	item, err := usershandler.Instance.GetByID(companyID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновить сотрудника
// @Tags Сотрудники
// @Description Обновить данные сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"user ID"
// @Param	body				body		companyapimodels.UserData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [put]
func (c *userController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload companyapimodels.UserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = usershandler.Instance.Update(companyID, id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить сотрудника
// @Tags Сотрудники
// @Description Удалить сотрудника компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"user ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [delete]
func (c *userController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = usershandler.Instance.Delete(companyID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменить роль сотрудника
// @Tags Сотрудники
// @Description Изменить роль сотрудника, доступно только администратору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"user ID"
// @Param	body				body		companyapimodels.ChangeRoleData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id}/change_role [put]
func (c *userController) ChangeRole(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload companyapimodels.ChangeRoleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = usershandler.Instance.ChangeRole(companyID, id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отстранить сотрудника
// @Tags Сотрудники
// @Description Отстранить сотрудника, вход и доступ блокируются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"user ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id}/suspend [put]
func (c *userController) Suspend(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = usershandler.Instance.Suspend(companyID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
