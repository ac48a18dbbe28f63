package analysis

import (
	"time"

	"github.com/google/uuid"

	"brandpulse/internal/models"
)

// Aggregate reduces a sequence of per-source observations into one summary.
// Pure and order-insensitive apart from the documented tie-break: the
// overall tone is a majority vote weighted by sentiment score, and any
// exact tie on the winning weight resolves to neutral.
//
// An empty observation set is a valid, low-confidence result: neutral tone,
// zero mentions, zero trust and the lowest coverage bucket. Only the id and
// timestamp differ between calls on identical input.
func Aggregate(observations []models.SourceObservation, prompt, brand string) models.AnalysisSummary {
	summary := models.AnalysisSummary{
		ID:          uuid.New(),
		BrandName:   brand,
		Prompt:      prompt,
		OverallTone: models.ToneNeutral,
		CreatedAt:   time.Now().UTC(),
	}

	var weightPositive, weightNeutral, weightNegative float64
	var trustTotal float64
	uniqueSources := make(map[string]bool)

	for _, obs := range observations {
		switch obs.SentimentTone {
		case models.TonePositive:
			weightPositive += obs.SentimentScore
		case models.ToneNegative:
			weightNegative += obs.SentimentScore
		default:
			weightNeutral += obs.SentimentScore
		}
		summary.TotalMentions += obs.MentionCount
		trustTotal += obs.TrustIndicator
		uniqueSources[obs.SourceID] = true
	}

	// Strict majority required; ties fall through to neutral so ambiguous
	// evidence is never overstated.
	if weightPositive > weightNegative && weightPositive > weightNeutral {
		summary.OverallTone = models.TonePositive
	} else if weightNegative > weightPositive && weightNegative > weightNeutral {
		summary.OverallTone = models.ToneNegative
	}

	summary.UniqueSources = len(uniqueSources)
	summary.CoverageBucket = models.CoverageFor(summary.UniqueSources)
	if len(observations) > 0 {
		summary.TrustScore = trustTotal / float64(len(observations))
	}
	return summary
}
