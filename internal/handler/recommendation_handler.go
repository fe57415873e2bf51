package handler

import (
	"github.com/gofiber/fiber/v3"

	"video-recommendation-service/internal/service"
)

// RecommendationHandler handles HTTP requests for recommendations.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// GetRecommendations returns ranked video recommendations for a user.
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID := c.Params("user_id")
	limit := fiber.Query(c, "limit", service.DefaultLimit)

	resp, err := h.svc.Recommend(c.Context(), userID, limit)
	if err != nil {
		return respondError(c, err, "failed to generate recommendations")
	}

	return c.JSON(resp)
}
