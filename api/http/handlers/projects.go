package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/project"
)

type ProjectHandler struct {
	useCase project.UseCase
}

func NewProjectHandler(useCase project.UseCase) *ProjectHandler {
	return &ProjectHandler{useCase: useCase}
}

type projectCreated struct {
	Project project.Project `json:"project"`
	Form    project.Input   `json:"form"`
}

// List returns the owner's projects, newest first.
// @Summary List own projects
// @Tags    projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} project.Project
// @Router  /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.useCase.List(c.Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create adds a project; the response carries the reset form.
// @Summary Create project
// @Tags    projects
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body project.Input true "project form"
// @Success 201 {object} projectCreated
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in project.Input
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.useCase.Create(c.Context(), owner, in)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, projectCreated{Project: p, Form: project.DefaultInput()})
}

// Delete removes one of the owner's projects.
// @Summary Delete project
// @Tags    projects
// @Security BearerAuth
// @Param   id path string true "project id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.useCase.Delete(c.Context(), owner, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
