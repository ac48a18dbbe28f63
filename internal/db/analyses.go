package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"brandpulse/internal/models"
)

// analysisColumns is the standard column list for analysis queries.
const analysisColumns = `id, brand_name, prompt, overall_tone, total_mentions,
	unique_sources, coverage_bucket, trust_score, created_at`

// scanAnalysis scans a row into an AnalysisSummary struct.
func scanAnalysis(row pgx.Row) (*models.AnalysisSummary, error) {
	var summary models.AnalysisSummary
	err := row.Scan(
		&summary.ID,
		&summary.BrandName,
		&summary.Prompt,
		&summary.OverallTone,
		&summary.TotalMentions,
		&summary.UniqueSources,
		&summary.CoverageBucket,
		&summary.TrustScore,
		&summary.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// scanAnalyses scans multiple rows into a slice of summaries.
func scanAnalyses(rows pgx.Rows) ([]models.AnalysisSummary, error) {
	defer rows.Close()

	var summaries []models.AnalysisSummary
	for rows.Next() {
		var summary models.AnalysisSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.BrandName,
			&summary.Prompt,
			&summary.OverallTone,
			&summary.TotalMentions,
			&summary.UniqueSources,
			&summary.CoverageBucket,
			&summary.TrustScore,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// InsertAnalysis stores a summary and its observations in one transaction.
// Either the whole write lands or the whole write is reported failed.
func (d *DB) InsertAnalysis(ctx context.Context, summary *models.AnalysisSummary, observations []models.SourceObservation) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO analyses (id, brand_name, prompt, overall_tone, total_mentions,
			unique_sources, coverage_bucket, trust_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, summary.ID, summary.BrandName, summary.Prompt, summary.OverallTone,
		summary.TotalMentions, summary.UniqueSources, summary.CoverageBucket,
		summary.TrustScore, summary.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	for _, obs := range observations {
		_, err = tx.Exec(ctx, `
			INSERT INTO observations (analysis_id, source_id, sentiment_tone,
				sentiment_score, mention_count, mention_contexts, trust_indicator)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, summary.ID, obs.SourceID, obs.SentimentTone, obs.SentimentScore,
			obs.MentionCount, obs.MentionContexts, obs.TrustIndicator)
		if err != nil {
			return fmt.Errorf("failed to insert observation for %s: %w", obs.SourceID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns a stored summary and its observations.
func (d *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisSummary, []models.SourceObservation, error) {
	summary, err := scanAnalysis(d.Pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id))
	if err != nil {
		return nil, nil, err
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT source_id, sentiment_tone, sentiment_score, mention_count,
			mention_contexts, trust_indicator
		FROM observations
		WHERE analysis_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var observations []models.SourceObservation
	for rows.Next() {
		var obs models.SourceObservation
		if err := rows.Scan(
			&obs.SourceID,
			&obs.SentimentTone,
			&obs.SentimentScore,
			&obs.MentionCount,
			&obs.MentionContexts,
			&obs.TrustIndicator,
		); err != nil {
			return nil, nil, err
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return summary, observations, nil
}

// ListRecentAnalyses returns the most recent summaries, newest first.
func (d *DB) ListRecentAnalyses(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanAnalyses(rows)
}

// ListAnalysesSince returns summaries created at or after the given time,
// newest first.
func (d *DB) ListAnalysesSince(ctx context.Context, since time.Time) ([]models.AnalysisSummary, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE created_at >= $1 ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, err
	}
	return scanAnalyses(rows)
}

// ListAnalysesByBrand returns every stored summary for one brand, newest
// first.
func (d *DB) ListAnalysesByBrand(ctx context.Context, brand string) ([]models.AnalysisSummary, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE brand_name = $1 ORDER BY created_at DESC`, brand)
	if err != nil {
		return nil, err
	}
	return scanAnalyses(rows)
}

// BrandToneTrend returns one point per day a brand was analyzed: per-tone
// counts and the day's average trust score, oldest first.
func (d *DB) BrandToneTrend(ctx context.Context, brand string) ([]models.TrendPoint, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT created_at::date AS day,
			COUNT(*) FILTER (WHERE overall_tone = 'positive') AS positive,
			COUNT(*) FILTER (WHERE overall_tone = 'neutral') AS neutral,
			COUNT(*) FILTER (WHERE overall_tone = 'negative') AS negative,
			AVG(trust_score) AS avg_trust
		FROM analyses
		WHERE brand_name = $1
		GROUP BY day
		ORDER BY day
	`, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []models.TrendPoint
	for rows.Next() {
		var day time.Time
		var point models.TrendPoint
		if err := rows.Scan(&day, &point.Positive, &point.Neutral, &point.Negative, &point.AvgTrust); err != nil {
			return nil, err
		}
		point.Date = day.Format("2006-01-02")
		trend = append(trend, point)
	}
	return trend, rows.Err()
}

// ListObservationsByBrand returns the per-source observations behind a
// brand's analyses, most recent analyses first.
func (d *DB) ListObservationsByBrand(ctx context.Context, brand string, limit int) ([]models.SourceObservation, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT o.source_id, o.sentiment_tone, o.sentiment_score, o.mention_count,
			o.mention_contexts, o.trust_indicator
		FROM observations o
		JOIN analyses a ON a.id = o.analysis_id
		WHERE a.brand_name = $1
		ORDER BY a.created_at DESC, o.id
		LIMIT $2
	`, brand, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []models.SourceObservation
	for rows.Next() {
		var obs models.SourceObservation
		if err := rows.Scan(
			&obs.SourceID,
			&obs.SentimentTone,
			&obs.SentimentScore,
			&obs.MentionCount,
			&obs.MentionContexts,
			&obs.TrustIndicator,
		); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

// CountAnalyses returns the total number of stored analyses.
func (d *DB) CountAnalyses(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&count)
	return count, err
}

// SentimentCounts returns stored analysis counts keyed by overall tone.
func (d *DB) SentimentCounts(ctx context.Context) (map[string]int, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT overall_tone, COUNT(*) FROM analyses GROUP BY overall_tone`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tone string
		var count int
		if err := rows.Scan(&tone, &count); err != nil {
			return nil, err
		}
		counts[tone] = count
	}
	return counts, rows.Err()
}

// TopBrands returns the most analyzed brands with their average trust score.
func (d *DB) TopBrands(ctx context.Context, limit int) ([]models.BrandStat, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT brand_name, COUNT(*) AS analysis_count, AVG(trust_score) AS avg_trust
		FROM analyses
		GROUP BY brand_name
		ORDER BY analysis_count DESC, brand_name
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.BrandStat
	for rows.Next() {
		var stat models.BrandStat
		if err := rows.Scan(&stat.BrandName, &stat.AnalysisCount, &stat.AvgTrustScore); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
