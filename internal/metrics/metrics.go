package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"brandpulse/internal/db"
)

var (
	analysesByToneDesc = prometheus.NewDesc(
		"brandpulse_analyses_by_tone",
		"Stored analysis count by overall tone",
		[]string{"tone"},
		nil,
	)

	analysesRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpulse_analysis_requests_total",
			Help: "Analysis request count by outcome",
		},
		[]string{"outcome"},
	)
)

// ToneCollector is a custom Prometheus collector that reads stored analysis
// counts from the database on each scrape.
type ToneCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ToneCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- analysesByToneDesc
}

// Collect queries the database for per-tone counts and emits them as gauges.
func (c *ToneCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.SentimentCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect analysis tone metrics", "error", err)
		return
	}
	for tone, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			analysesByToneDesc,
			prometheus.GaugeValue,
			float64(count),
			tone,
		)
	}
}

var initOnce sync.Once

// Init registers the custom collector and the request counter.
// Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&ToneCollector{db: database})
		prometheus.MustRegister(analysesRun)
	})
}

// RecordAnalysis records an analysis request outcome.
func RecordAnalysis(outcome string) {
	analysesRun.WithLabelValues(outcome).Inc()
}
