package handler

import (
	"github.com/gofiber/fiber/v3"

	"video-recommendation-service/internal/models"
	"video-recommendation-service/internal/service"
)

// VideoHandler handles HTTP requests for the video catalog.
type VideoHandler struct {
	svc *service.CatalogService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc *service.CatalogService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// CreateVideo creates a new video.
func (h *VideoHandler) CreateVideo(c fiber.Ctx) error {
	var req models.CreateVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body", Kind: models.KindValidation,
		})
	}

	video, err := h.svc.CreateVideo(req)
	if err != nil {
		return respondError(c, err, "failed to create video")
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

// ListVideos returns a filtered, paginated video listing.
func (h *VideoHandler) ListVideos(c fiber.Ctx) error {
	params := models.VideoListParams{
		Tag:      c.Query("tag"),
		Mood:     c.Query("mood"),
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "page_size", 20),
	}

	result, err := h.svc.ListVideos(params)
	if err != nil {
		return respondError(c, err, "failed to retrieve videos")
	}

	return c.JSON(result)
}

// GetVideo returns a video by ID.
func (h *VideoHandler) GetVideo(c fiber.Ctx) error {
	video, err := h.svc.GetVideo(c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to retrieve video")
	}
	return c.JSON(video)
}

// UpdateVideo changes video metadata.
func (h *VideoHandler) UpdateVideo(c fiber.Ctx) error {
	var req models.UpdateVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body", Kind: models.KindValidation,
		})
	}

	video, err := h.svc.UpdateVideo(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update video")
	}
	return c.JSON(video)
}

// DeleteVideo removes a video from the catalog.
func (h *VideoHandler) DeleteVideo(c fiber.Ctx) error {
	if err := h.svc.DeleteVideo(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete video")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CatalogMeta returns the catalog tag and mood vocabulary.
func (h *VideoHandler) CatalogMeta(c fiber.Ctx) error {
	meta, err := h.svc.Meta()
	if err != nil {
		return respondError(c, err, "failed to retrieve catalog meta")
	}
	return c.JSON(meta)
}

// Seed inserts the sample catalog.
func (h *VideoHandler) Seed(c fiber.Ctx) error {
	added, err := h.svc.Seed()
	if err != nil {
		return respondError(c, err, "seed failed")
	}
	return c.JSON(fiber.Map{"seeded": added})
}

// Sync pulls videos from the upstream content provider.
func (h *VideoHandler) Sync(c fiber.Ctx) error {
	fetched, added, err := h.svc.SyncFromProvider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "sync failed: " + err.Error(),
		})
	}
	return c.JSON(fiber.Map{"fetched": fetched, "added": added})
}
