package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/skill"
)

type SkillHandler struct {
	useCase skill.UseCase
}

func NewSkillHandler(useCase skill.UseCase) *SkillHandler {
	return &SkillHandler{useCase: useCase}
}

type skillCreated struct {
	Skill skill.Skill `json:"skill"`
	Form  skill.Input `json:"form"`
}

// List returns the owner's skills by name, or by proficiency with ?order=proficiency.
// @Summary List own skills
// @Tags    skills
// @Produce json
// @Security BearerAuth
// @Param   order query string false "name (default) or proficiency"
// @Success 200 {array} skill.Skill
// @Router  /skills [get]
func (h *SkillHandler) List(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	order := skill.OrderByName
	if c.Query("order") == "proficiency" {
		order = skill.OrderByProficiency
	}
	items, err := h.useCase.List(c.Context(), owner, order)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create adds a skill; the response carries the reset form (proficiency 3).
// @Summary Create skill
// @Tags    skills
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body skill.Input true "skill form"
// @Success 201 {object} skillCreated
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /skills [post]
func (h *SkillHandler) Create(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in skill.Input
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.useCase.Create(c.Context(), owner, in)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, skillCreated{Skill: s, Form: skill.DefaultInput()})
}

// Delete removes one of the owner's skills.
// @Summary Delete skill
// @Tags    skills
// @Security BearerAuth
// @Param   id path string true "skill id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /skills/{id} [delete]
func (h *SkillHandler) Delete(c *fiber.Ctx) error {
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
