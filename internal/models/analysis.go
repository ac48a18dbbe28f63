package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment tone categories. Exactly one applies to any observation.
const (
	TonePositive = "positive"
	ToneNeutral  = "neutral"
	ToneNegative = "negative"
)

// Coverage buckets, ordered from least to most source coverage.
const (
	CoverageMinimal   = "minimal"
	CoverageModerate  = "moderate"
	CoverageExtensive = "extensive"
)

// Coverage bucket thresholds on distinct source count.
const (
	coverageModerateMin  = 3
	coverageExtensiveMin = 8
)

// CoverageFor maps a distinct-source count to its coverage bucket.
// Total and monotonic: every non-negative count maps to exactly one bucket.
func CoverageFor(uniqueSources int) string {
	switch {
	case uniqueSources >= coverageExtensiveMin:
		return CoverageExtensive
	case uniqueSources >= coverageModerateMin:
		return CoverageModerate
	default:
		return CoverageMinimal
	}
}

// SourceObservation holds the metrics derived from one crawled source.
// Immutable once created; owned by the analysis request that produced it.
type SourceObservation struct {
	SourceID        string   `json:"source_id"`
	SentimentTone   string   `json:"sentiment_tone"`
	SentimentScore  float64  `json:"sentiment_score"`
	MentionCount    int      `json:"mention_count"`
	MentionContexts []string `json:"mention_contexts"`
	TrustIndicator  float64  `json:"trust_indicator"`
}

// AnalysisSummary is the aggregate record for one analysis request.
// Written once after aggregation; append-only history thereafter.
type AnalysisSummary struct {
	ID             uuid.UUID `json:"analysis_id"`
	BrandName      string    `json:"brand_name"`
	Prompt         string    `json:"prompt"`
	OverallTone    string    `json:"overall_tone"`
	TotalMentions  int       `json:"total_mentions"`
	UniqueSources  int       `json:"unique_sources"`
	CoverageBucket string    `json:"coverage_bucket"`
	TrustScore     float64   `json:"trust_score"`
	CreatedAt      time.Time `json:"created_at"`
}
