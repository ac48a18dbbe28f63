package api

import (
	"github.com/gofiber/fiber/v3"

	"brandpulse/internal/db"
	"brandpulse/internal/models"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	resp := models.HealthResponse{Status: "ok", Database: "ok"}

	if err := h.db.Ping(c.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(resp)
}
