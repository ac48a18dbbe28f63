package analysis

import (
	"testing"

	"brandpulse/internal/models"
)

func obs(source, tone string, score float64, mentions int, trust float64) models.SourceObservation {
	return models.SourceObservation{
		SourceID:        source,
		SentimentTone:   tone,
		SentimentScore:  score,
		MentionCount:    mentions,
		MentionContexts: []string{},
		TrustIndicator:  trust,
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, "how is acme doing", "Acme")

	if summary.OverallTone != models.ToneNeutral {
		t.Errorf("OverallTone = %q, want neutral", summary.OverallTone)
	}
	if summary.TotalMentions != 0 {
		t.Errorf("TotalMentions = %d, want 0", summary.TotalMentions)
	}
	if summary.UniqueSources != 0 {
		t.Errorf("UniqueSources = %d, want 0", summary.UniqueSources)
	}
	if summary.TrustScore != 0 {
		t.Errorf("TrustScore = %v, want 0", summary.TrustScore)
	}
	if summary.CoverageBucket != models.CoverageMinimal {
		t.Errorf("CoverageBucket = %q, want minimal", summary.CoverageBucket)
	}
	if summary.BrandName != "Acme" || summary.Prompt != "how is acme doing" {
		t.Errorf("identity fields not carried through: %+v", summary)
	}
}

func TestAggregateTone(t *testing.T) {
	tests := []struct {
		name         string
		observations []models.SourceObservation
		wantTone     string
	}{
		{
			"positive majority",
			[]models.SourceObservation{
				obs("a", models.TonePositive, 0.8, 1, 0.5),
				obs("b", models.TonePositive, 0.8, 1, 0.5),
				obs("c", models.ToneNegative, 0.9, 1, 0.5),
			},
			models.TonePositive,
		},
		{
			"negative by weight despite fewer sources",
			[]models.SourceObservation{
				obs("a", models.ToneNegative, 0.95, 1, 0.5),
				obs("b", models.TonePositive, 0.6, 1, 0.5),
				obs("c", models.ToneNeutral, 0.2, 1, 0.5),
			},
			models.ToneNegative,
		},
		{
			"exact tie resolves neutral",
			[]models.SourceObservation{
				obs("a", models.TonePositive, 0.5, 1, 0.5),
				obs("b", models.ToneNegative, 0.5, 1, 0.5),
			},
			models.ToneNeutral,
		},
		{
			"neutral weight blocks weak majority",
			[]models.SourceObservation{
				obs("a", models.TonePositive, 0.3, 1, 0.5),
				obs("b", models.ToneNeutral, 0.5, 1, 0.5),
			},
			models.ToneNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(tt.observations, "prompt", "Acme")
			if summary.OverallTone != tt.wantTone {
				t.Errorf("OverallTone = %q, want %q", summary.OverallTone, tt.wantTone)
			}
		})
	}
}

func TestAggregateTotals(t *testing.T) {
	observations := []models.SourceObservation{
		obs("https://a.example/1", models.TonePositive, 0.8, 2, 0.6),
		obs("https://b.example/1", models.TonePositive, 0.8, 0, 0.4),
		obs("https://c.example/1", models.TonePositive, 0.8, 5, 0.8),
	}

	summary := Aggregate(observations, "prompt", "Acme")

	if summary.TotalMentions != 7 {
		t.Errorf("TotalMentions = %d, want 7", summary.TotalMentions)
	}
	if summary.UniqueSources != 3 {
		t.Errorf("UniqueSources = %d, want 3", summary.UniqueSources)
	}
	if summary.OverallTone != models.TonePositive {
		t.Errorf("OverallTone = %q, want positive", summary.OverallTone)
	}
	if summary.CoverageBucket != models.CoverageModerate {
		t.Errorf("CoverageBucket = %q, want moderate", summary.CoverageBucket)
	}

	want := (0.6 + 0.4 + 0.8) / 3
	if diff := summary.TrustScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TrustScore = %v, want %v", summary.TrustScore, want)
	}
}

func TestAggregateDuplicateSources(t *testing.T) {
	observations := []models.SourceObservation{
		obs("https://a.example/1", models.ToneNeutral, 0.5, 1, 0.5),
		obs("https://a.example/1", models.ToneNeutral, 0.5, 1, 0.5),
	}

	summary := Aggregate(observations, "prompt", "Acme")
	if summary.UniqueSources != 1 {
		t.Errorf("UniqueSources = %d, want 1", summary.UniqueSources)
	}
	if summary.TotalMentions != 2 {
		t.Errorf("TotalMentions = %d, want 2", summary.TotalMentions)
	}
}

func TestAggregateRepeatable(t *testing.T) {
	observations := []models.SourceObservation{
		obs("a", models.TonePositive, 0.7, 3, 0.6),
		obs("b", models.ToneNegative, 0.6, 1, 0.3),
	}

	first := Aggregate(observations, "prompt", "Acme")
	second := Aggregate(observations, "prompt", "Acme")

	if first.ID == second.ID {
		t.Error("repeated aggregations share an id")
	}
	if first.OverallTone != second.OverallTone ||
		first.TotalMentions != second.TotalMentions ||
		first.UniqueSources != second.UniqueSources ||
		first.CoverageBucket != second.CoverageBucket ||
		first.TrustScore != second.TrustScore {
		t.Errorf("metric fields differ between runs:\n%+v\n%+v", first, second)
	}
}
