package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"brandpulse/internal/analysis"
	"brandpulse/internal/config"
	"brandpulse/internal/metrics"
	"brandpulse/internal/models"
	"brandpulse/internal/pipeline"
	"brandpulse/internal/validation"
)

// AnalysisRunner runs one analysis request end to end.
type AnalysisRunner interface {
	Run(ctx context.Context, prompt, brand string) (*models.AnalysisSummary, []models.SourceObservation, error)
}

// AlertNotifier is notified when an analysis lands with negative tone.
type AlertNotifier interface {
	NotifyNegativeTone(summary *models.AnalysisSummary)
}

// AnalyzeHandler accepts prompts and runs the analysis pipeline.
type AnalyzeHandler struct {
	runner   AnalysisRunner
	notifier AlertNotifier // may be nil
	cfg      *config.Config
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(runner AnalysisRunner, notifier AlertNotifier, cfg *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{runner: runner, notifier: notifier, cfg: cfg}
}

// Analyze handles POST /api/analytics/analyze.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, CodeInvalidInput, "request body must be valid JSON")
	}

	if ok, msg := validation.ValidatePrompt(req.Prompt, h.cfg.MaxPromptLength); !ok {
		return jsonError(c, fiber.StatusBadRequest, CodeInvalidInput, msg)
	}

	brand := strings.TrimSpace(req.BrandHint)
	if brand == "" {
		brand = validation.ExtractBrandName(req.Prompt)
	}
	if ok, msg := validation.ValidateBrand(brand); !ok {
		return jsonError(c, fiber.StatusBadRequest, CodeInvalidInput, msg)
	}

	summary, observations, err := h.runner.Run(c.Context(), req.Prompt, brand)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrInvalidBrand):
			metrics.RecordAnalysis(CodeInvalidInput)
			return jsonError(c, fiber.StatusBadRequest, CodeInvalidInput, "brand term could not be validated")
		case errors.Is(err, pipeline.ErrPersistence):
			metrics.RecordAnalysis(CodePersistenceFailure)
			return jsonError(c, fiber.StatusServiceUnavailable, CodePersistenceFailure, "analysis could not be stored, please retry")
		default:
			metrics.RecordAnalysis(CodeInternal)
			return jsonError(c, fiber.StatusInternalServerError, CodeInternal, "analysis failed")
		}
	}

	metrics.RecordAnalysis("ok")
	if h.notifier != nil && summary.OverallTone == models.ToneNegative {
		h.notifier.NotifyNegativeTone(summary)
	}

	if observations == nil {
		observations = []models.SourceObservation{}
	}
	return jsonSuccess(c, models.AnalysisResponse{
		Summary:      *summary,
		Observations: observations,
	})
}
