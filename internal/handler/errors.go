package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"video-recommendation-service/internal/models"
)

// ErrorResponse is the standard error response format. Kind is the
// machine-readable error class; Error is the human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func statusForKind(kind string) int {
	switch kind {
	case models.KindValidation:
		return fiber.StatusBadRequest
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps a service error to the matching HTTP response.
// Unclassified errors are logged and reported as the fallback message.
func respondError(c fiber.Ctx, err error, fallback string) error {
	if kind, ok := models.ErrKind(err); ok {
		return c.Status(statusForKind(kind)).JSON(ErrorResponse{
			Error: err.Error(),
			Kind:  kind,
		})
	}
	slog.Error(fallback, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: fallback})
}
