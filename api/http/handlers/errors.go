package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/auth"
	"github.com/artem13815/folio/pkg/portfolio"
	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/resume"
	"github.com/artem13815/folio/pkg/security/jwt"
	"github.com/artem13815/folio/pkg/skill"
	"github.com/artem13815/folio/pkg/validation"
	"github.com/artem13815/folio/pkg/wizard"
)

var errBadBody = errors.New("invalid JSON payload")

var errStatus = []struct {
	err    error
	status int
}{
	{profile.ErrNotFound, http.StatusNotFound},
	{project.ErrNotFound, http.StatusNotFound},
	{skill.ErrNotFound, http.StatusNotFound},
	{portfolio.ErrNotFound, http.StatusNotFound},
	{auth.ErrNoSession, http.StatusUnauthorized},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrUserAlreadyExists, http.StatusConflict},
	{errBadBody, http.StatusBadRequest},
	{wizard.ErrBadPayload, http.StatusBadRequest},
	{wizard.ErrStepMismatch, http.StatusConflict},
	{wizard.ErrComplete, http.StatusConflict},
	{wizard.ErrSubmissionInFlight, http.StatusConflict},
	{wizard.ErrSessionChanged, http.StatusConflict},
	{resume.ErrLastRow, http.StatusBadRequest},
	{resume.ErrRowIndex, http.StatusBadRequest},
	{resume.ErrUnsupportedFormat, http.StatusBadRequest},
	{resume.ErrEmptyDocument, http.StatusBadRequest},
	{resume.ErrImportUnavailable, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// respondError maps domain errors to HTTP answers. Anything unknown is a
// failed remote call and its message is passed through as is.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return presenter.Validation(c, verr)
	}
	for _, m := range errStatus {
		if errors.Is(err, m.err) {
			return presenter.Error(c, m.status, err.Error())
		}
	}
	return presenter.Error(c, http.StatusInternalServerError, err.Error())
}

// ownerID is the authenticated user; every record query is scoped by it.
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := jwt.UserID(c)
	if !ok {
		return uuid.Nil, auth.ErrNoSession
	}
	return id, nil
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}
