package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"brandpulse/internal/db"
	"brandpulse/internal/models"
)

// AnalyticsHandler serves stored analyses via JSON API.
type AnalyticsHandler struct {
	db *db.DB
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(database *db.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: database}
}

// Get returns a single analysis with its observations.
func (h *AnalyticsHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, CodeInvalidInput, "invalid analysis id")
	}

	summary, observations, err := h.db.GetAnalysis(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			return jsonError(c, fiber.StatusNotFound, CodeNotFound, "analysis not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch analysis")
	}

	if observations == nil {
		observations = []models.SourceObservation{}
	}
	return jsonSuccess(c, models.AnalysisResponse{
		Summary:      *summary,
		Observations: observations,
	})
}

// Recent returns the most recent analysis summaries.
func (h *AnalyticsHandler) Recent(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	summaries, err := h.db.ListRecentAnalyses(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch analyses")
	}
	if summaries == nil {
		summaries = []models.AnalysisSummary{}
	}
	return jsonSuccess(c, summaries)
}
