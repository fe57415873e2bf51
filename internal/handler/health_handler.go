package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// Counter reports how many entities a store holds.
type Counter interface {
	Count() (int, error)
}

// HealthHandler reports service health and entity counts.
type HealthHandler struct {
	videos       Counter
	users        Counter
	interactions Counter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(videos, users, interactions Counter) *HealthHandler {
	return &HealthHandler{videos: videos, users: users, interactions: interactions}
}

// Health returns service health status with entity counts.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	counts := fiber.Map{"status": "ok"}
	for name, store := range map[string]Counter{
		"videos":       h.videos,
		"users":        h.users,
		"interactions": h.interactions,
	} {
		n, err := store.Count()
		if err != nil {
			slog.Warn("health count failed", "entity", name, "error", err)
			continue
		}
		counts[name] = n
	}
	return c.JSON(counts)
}
