package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/pkg/validation"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationResponse lists field-level messages for a rejected form.
type ValidationResponse struct {
	Message string                `json:"message"`
	Fields  validation.Violations `json:"fields"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func Validation(c *fiber.Ctx, err *validation.Error) error {
	return JSON(c, http.StatusUnprocessableEntity, ValidationResponse{
		Message: "validation failed",
		Fields:  err.Fields,
	})
}
