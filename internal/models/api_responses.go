package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyzeRequest is the inbound body for POST /api/analytics/analyze.
type AnalyzeRequest struct {
	Prompt    string `json:"prompt"`
	BrandHint string `json:"brand_hint,omitempty"`
}

// AnalysisResponse pairs a summary with its per-source observations.
type AnalysisResponse struct {
	Summary      AnalysisSummary     `json:"summary"`
	Observations []SourceObservation `json:"observations"`
}

// ToneBreakdown is the share of stored analyses per overall tone.
type ToneBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// BrandStat summarizes stored analyses for one brand.
type BrandStat struct {
	BrandName     string  `json:"brand_name"`
	AnalysisCount int     `json:"analysis_count"`
	AvgTrustScore float64 `json:"avg_trust_score"`
}

// Insight is a one-line reading of a recent analysis for the dashboard.
type Insight struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	BrandName  string    `json:"brand_name"`
	Insight    string    `json:"insight"`
	CreatedAt  time.Time `json:"created_at"`
}

// DashboardResponse contains the aggregates backing the dashboard view.
type DashboardResponse struct {
	TotalAnalyses      int               `json:"total_analyses"`
	RecentAnalyses     []AnalysisSummary `json:"recent_analyses"`
	SentimentBreakdown ToneBreakdown     `json:"sentiment_breakdown"`
	TopBrands          []BrandStat       `json:"top_brands"`
	RecentInsights     []Insight         `json:"recent_insights"`
}

// TrendPoint is one day of a brand's analysis history: per-tone counts and
// the day's average trust score.
type TrendPoint struct {
	Date     string  `json:"date"`
	Positive int     `json:"positive"`
	Neutral  int     `json:"neutral"`
	Negative int     `json:"negative"`
	AvgTrust float64 `json:"avg_trust"`
}

// BrandDashboardResponse is the per-brand drill-down: the brand's analyses,
// its tone trend over time, and the per-source observations behind them.
type BrandDashboardResponse struct {
	BrandName      string              `json:"brand_name"`
	Analyses       []AnalysisSummary   `json:"analyses"`
	SentimentTrend []TrendPoint        `json:"sentiment_trend"`
	SourceDetails  []SourceObservation `json:"source_details"`
}

// HealthResponse reports service liveness and dependency status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
