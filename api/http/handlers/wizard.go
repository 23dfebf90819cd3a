package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/resume"
	"github.com/artem13815/folio/pkg/wizard"
)

type WizardHandler struct {
	useCase wizard.UseCase
}

func NewWizardHandler(useCase wizard.UseCase) *WizardHandler {
	return &WizardHandler{useCase: useCase}
}

// Get returns the wizard position, the step list and the resume draft.
// @Summary Wizard state
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Router  /wizard [get]
func (h *WizardHandler) Get(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	v, err := h.useCase.State(c.Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// Restart returns an unfinished wizard to the first step.
// @Summary Restart wizard
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /wizard [delete]
func (h *WizardHandler) Restart(c *fiber.Ctx) error {
	return h.move(c, h.useCase.Restart)
}

// Submit saves the current step's form and advances on success.
// @Summary Submit wizard step
// @Tags    wizard
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   step path string true "profile, projects, skills or resume"
// @Success 200 {object} wizard.Outcome
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /wizard/steps/{step} [post]
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	// copy: fiber reuses the request buffer after the handler returns
	payload := json.RawMessage(append([]byte(nil), c.Body()...))
	out, err := h.useCase.Submit(c.Context(), owner, wizard.StepID(c.Params("step")), payload)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Skip leaves the current step empty and moves on.
// @Summary Skip wizard step
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Router  /wizard/skip [post]
func (h *WizardHandler) Skip(c *fiber.Ctx) error {
	return h.move(c, h.useCase.Skip)
}

// Back returns to the previous step; a no-op on the first one.
// @Summary Previous wizard step
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Router  /wizard/back [post]
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	return h.move(c, h.useCase.Back)
}

func (h *WizardHandler) move(c *fiber.Ctx, fn func(ctx context.Context, owner uuid.UUID) (wizard.View, error)) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	v, err := fn(c.Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// SaveDraft replaces the stored resume draft.
// @Summary Save resume draft
// @Tags    wizard
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body resume.Draft true "draft"
// @Success 200 {object} wizard.View
// @Router  /wizard/draft [put]
func (h *WizardHandler) SaveDraft(c *fiber.Ctx) error {
	var d resume.Draft
	if err := c.BodyParser(&d); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return h.editDraft(c, func(cur *resume.Draft) error {
		*cur = d
		return nil
	})
}

// AddEducation appends a blank education row.
// @Summary Add education row
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Router  /wizard/draft/education [post]
func (h *WizardHandler) AddEducation(c *fiber.Ctx) error {
	return h.editDraft(c, func(d *resume.Draft) error {
		d.AddEducation()
		return nil
	})
}

// RemoveEducation deletes an education row; the last one cannot be removed.
// @Summary Remove education row
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Param   index path int true "row index"
// @Success 200 {object} wizard.View
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /wizard/draft/education/{index} [delete]
func (h *WizardHandler) RemoveEducation(c *fiber.Ctx) error {
	i, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid index")
	}
	return h.editDraft(c, func(d *resume.Draft) error { return d.RemoveEducation(i) })
}

// AddExperience appends a blank work-experience row.
// @Summary Add work experience row
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} wizard.View
// @Router  /wizard/draft/experience [post]
func (h *WizardHandler) AddExperience(c *fiber.Ctx) error {
	return h.editDraft(c, func(d *resume.Draft) error {
		d.AddWorkExperience()
		return nil
	})
}

// RemoveExperience deletes a work-experience row; the last one cannot be removed.
// @Summary Remove work experience row
// @Tags    wizard
// @Produce json
// @Security BearerAuth
// @Param   index path int true "row index"
// @Success 200 {object} wizard.View
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /wizard/draft/experience/{index} [delete]
func (h *WizardHandler) RemoveExperience(c *fiber.Ctx) error {
	i, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid index")
	}
	return h.editDraft(c, func(d *resume.Draft) error { return d.RemoveWorkExperience(i) })
}

func (h *WizardHandler) editDraft(c *fiber.Ctx, edit func(*resume.Draft) error) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	v, err := h.useCase.EditDraft(c.Context(), owner, edit)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}
