// Package handlers contains the server-rendered frontend handlers.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"brandpulse/internal/config"
	"brandpulse/internal/db"
	"brandpulse/internal/models"
)

// DashboardHandler renders the HTML dashboard page.
type DashboardHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewDashboardHandler creates a new frontend dashboard handler.
func NewDashboardHandler(database *db.DB, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{db: database, cfg: cfg}
}

// Index renders the dashboard with recent analyses and brand rollups.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	ctx := c.Context()

	total, err := h.db.CountAnalyses(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load dashboard")
	}

	recent, err := h.db.ListRecentAnalyses(ctx, 10)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load dashboard")
	}

	brands, err := h.db.TopBrands(ctx, 10)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return c.Render("dashboard", fiber.Map{
		"Title":          "Dashboard",
		"SiteTitle":      h.cfg.SiteTitle,
		"TotalAnalyses":  total,
		"RecentAnalyses": recent,
		"TopBrands":      brands,
		"ToneNegative":   models.ToneNegative,
	})
}
