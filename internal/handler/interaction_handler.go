package handler

import (
	"github.com/gofiber/fiber/v3"

	"video-recommendation-service/internal/models"
	"video-recommendation-service/internal/service"
)

// InteractionHandler handles HTTP requests for recording interactions.
type InteractionHandler struct {
	svc *service.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// CreateInteraction records a user interaction with a video.
func (h *InteractionHandler) CreateInteraction(c fiber.Ctx) error {
	var req models.CreateInteractionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body", Kind: models.KindValidation,
		})
	}

	inter, err := h.svc.Record(c.Context(), req)
	if err != nil {
		return respondError(c, err, "failed to record interaction")
	}

	return c.Status(fiber.StatusCreated).JSON(inter)
}
