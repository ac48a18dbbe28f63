package api

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"brandpulse/internal/db"
	"brandpulse/internal/models"
)

// DashboardHandler serves the dashboard aggregates.
type DashboardHandler struct {
	db *db.DB
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB) *DashboardHandler {
	return &DashboardHandler{db: database}
}

// Dashboard returns totals, recent analyses, the sentiment breakdown and
// the most analyzed brands.
func (h *DashboardHandler) Dashboard(c fiber.Ctx) error {
	ctx := c.Context()

	total, err := h.db.CountAnalyses(ctx)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch dashboard data")
	}

	recent, err := h.db.ListRecentAnalyses(ctx, 10)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch dashboard data")
	}
	if recent == nil {
		recent = []models.AnalysisSummary{}
	}

	counts, err := h.db.SentimentCounts(ctx)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch dashboard data")
	}

	brands, err := h.db.TopBrands(ctx, 10)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch dashboard data")
	}
	if brands == nil {
		brands = []models.BrandStat{}
	}

	return jsonSuccess(c, models.DashboardResponse{
		TotalAnalyses:      total,
		RecentAnalyses:     recent,
		SentimentBreakdown: breakdownFromCounts(counts, total),
		TopBrands:          brands,
		RecentInsights:     insightsFromSummaries(recent, maxInsights),
	})
}

// Brand returns the drill-down for one brand: its analyses, daily tone
// trend and the per-source observations behind them. An unknown brand is
// not an error; it comes back with empty collections.
func (h *DashboardHandler) Brand(c fiber.Ctx) error {
	brand := c.Params("name")
	ctx := c.Context()

	analyses, err := h.db.ListAnalysesByBrand(ctx, brand)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch brand data")
	}
	if analyses == nil {
		analyses = []models.AnalysisSummary{}
	}

	trend, err := h.db.BrandToneTrend(ctx, brand)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch brand data")
	}
	if trend == nil {
		trend = []models.TrendPoint{}
	}

	details, err := h.db.ListObservationsByBrand(ctx, brand, maxSourceDetails)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "failed to fetch brand data")
	}
	if details == nil {
		details = []models.SourceObservation{}
	}

	return jsonSuccess(c, models.BrandDashboardResponse{
		BrandName:      brand,
		Analyses:       analyses,
		SentimentTrend: trend,
		SourceDetails:  details,
	})
}

const (
	maxInsights      = 5
	maxSourceDetails = 50

	// highTrust separates a merely positive reading from a strong one.
	highTrust = 0.8
)

// insightsFromSummaries derives a one-line reading per recent analysis.
func insightsFromSummaries(summaries []models.AnalysisSummary, limit int) []models.Insight {
	insights := []models.Insight{}
	for _, s := range summaries {
		if len(insights) >= limit {
			break
		}
		insights = append(insights, models.Insight{
			AnalysisID: s.ID,
			BrandName:  s.BrandName,
			Insight:    insightFor(s),
			CreatedAt:  s.CreatedAt,
		})
	}
	return insights
}

// insightFor maps an analysis to its dashboard one-liner.
func insightFor(s models.AnalysisSummary) string {
	switch {
	case s.OverallTone == models.TonePositive && s.TrustScore > highTrust:
		return fmt.Sprintf("Strong positive sentiment with high trust score of %.2f", s.TrustScore)
	case s.OverallTone == models.TonePositive:
		return fmt.Sprintf("Positive sentiment with trust score of %.2f", s.TrustScore)
	case s.OverallTone == models.ToneNegative:
		return fmt.Sprintf("Negative sentiment detected, trust score of %.2f", s.TrustScore)
	default:
		return fmt.Sprintf("Neutral sentiment with trust score of %.2f", s.TrustScore)
	}
}

// breakdownFromCounts converts per-tone counts into percentage shares.
func breakdownFromCounts(counts map[string]int, total int) models.ToneBreakdown {
	if total == 0 {
		return models.ToneBreakdown{}
	}
	pct := func(n int) float64 {
		return float64(n) * 100 / float64(total)
	}
	return models.ToneBreakdown{
		Positive: pct(counts[models.TonePositive]),
		Neutral:  pct(counts[models.ToneNeutral]),
		Negative: pct(counts[models.ToneNegative]),
	}
}
