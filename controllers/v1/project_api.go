package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"stroy-tools-backend/controllers"
	projecthandler "stroy-tools-backend/lib/project"
	"stroy-tools-backend/middleware"
	apimodels "stroy-tools-backend/models/api"
	projectapimodels "stroy-tools-backend/models/api/project"
)

type projectController struct {
	controllers.BaseAPIController
}

func InitProjectApiRouters(app *fiber.App) {
	controller := projectController{}
	app.Route("projects", func(projectsRootRoute fiber.Router) {
		projectsRootRoute.Use(middleware.AuthorizationRequired())
		projectsRootRoute.Use(middleware.RbacMiddleware())
		projectsRootRoute.Post("", controller.CreateProject)
		projectsRootRoute.Post("list", controller.ListProjects)
		projectsRootRoute.Route(":id", func(projectsIDRoute fiber.Router) {
			projectsIDRoute.Get("", controller.GetProjectByID)
			projectsIDRoute.Put("", controller.UpdateProject)
			projectsIDRoute.Put("archive", controller.ArchiveProject)
			projectsIDRoute.Get("assignments", controller.ListAssignments)
			projectsIDRoute.Post("assign", controller.Assign)
			projectsIDRoute.Delete("assign/:user_id", controller.Unassign)
		})
	})
}

// @Summary Создать проект
// @Tags Проекты
// @Description Создать строительный проект
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		projectapimodels.ProjectData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects [post]
func (c *projectController) CreateProject(ctx *fiber.Ctx) error {
	var payload projectapimodels.ProjectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := projecthandler.Instance.Create(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Получить список проектов
// @Tags Проекты
// @Description Получить список проектов с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		projectapimodels.ProjectFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/list [post]
func (c *projectController) ListProjects(ctx *fiber.Ctx) error {
	var payload projectapimodels.ProjectFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	list, rowCount, err := projecthandler.Instance.List(companyID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получить проект по ID
// @Tags Проекты
// @Description Получить проект по ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id} [get]
func (c *projectController) GetProjectByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	item, err := projecthandler.Instance.GetByID(companyID, userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновить проект
// @Tags Проекты
// @Description Обновить данные проекта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Param	body				body		projectapimodels.ProjectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id} [put]
func (c *projectController) UpdateProject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.ProjectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	err = projecthandler.Instance.Update(companyID, userID, id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Перевести проект в архив
// @Tags Проекты
// @Description Перевести проект в архив, история по проекту сохраняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id}/archive [put]
func (c *projectController) ArchiveProject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	err = projecthandler.Instance.Archive(companyID, userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получить назначения на проект
// @Tags Проекты
// @Description Получить список сотрудников, назначенных на проект
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Success 200 {object} apimodels.Response{data=[]projectapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id}/assignments [get]
func (c *projectController) ListAssignments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	list, err := projecthandler.Instance.ListAssignments(companyID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Назначить сотрудника на проект
// @Tags Проекты
// @Description Назначить сотрудника на проект, повторное назначение не создаёт дубликата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Param	body				body		projectapimodels.AssignData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id}/assign [post]
func (c *projectController) Assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.AssignData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	assignmentID, err := projecthandler.Instance.Assign(companyID, userID, id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(assignmentID))
}

// @Summary Снять сотрудника с проекта
// @Tags Проекты
// @Description Снять назначение сотрудника с проекта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"project ID"
// @Param 	user_id 			path 		string  true 	"user ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id}/assign/{user_id} [delete]
func (c *projectController) Unassign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	memberID := ctx.Params("user_id")
	if memberID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан сотрудник"))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	err = projecthandler.Instance.Unassign(companyID, userID, id, memberID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
