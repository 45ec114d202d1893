package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	})
}

// statusFor maps domain errors onto HTTP status codes. Anything unrecognised
// is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidRecord):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Server errors are logged and replaced by
// the generic message so store details do not leak to clients.
func (h *Handler) fail(c *fiber.Ctx, err error, generic string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error(generic, zap.String("path", c.Path()), zap.Error(err))
		return errorJSON(c, status, generic)
	}
	return errorJSON(c, status, err.Error())
}
