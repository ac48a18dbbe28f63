// Package pipeline runs one analysis request end to end: search, bounded
// fan-out extraction, aggregation and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"brandpulse/internal/analysis"
	"brandpulse/internal/models"
	"brandpulse/internal/search"
	"brandpulse/internal/validation"
)

// ErrPersistence marks a failed or timed-out storage write. Surfaced to the
// caller as retryable; the computed summary is discarded since it is cheap
// to recompute.
var ErrPersistence = errors.New("failed to store analysis")

// Store is the persistence collaborator consumed by the pipeline.
type Store interface {
	InsertAnalysis(ctx context.Context, summary *models.AnalysisSummary, observations []models.SourceObservation) error
}

// Options bounds the pipeline's external interactions.
type Options struct {
	MaxSources int
	Workers    int

	// SourceTimeout bounds the single batched search call that yields all
	// sources. Individual source failures are isolated inside the search
	// collaborator, which drops bad entries and returns the survivors.
	SourceTimeout time.Duration

	PersistTimeout time.Duration
}

// Runner executes analysis requests. Each run is an independent unit of
// work; Runner holds no per-request state and is safe for concurrent use.
type Runner struct {
	searcher  search.Searcher
	extractor *analysis.Extractor
	store     Store
	opts      Options
}

// NewRunner creates a pipeline runner.
func NewRunner(searcher search.Searcher, extractor *analysis.Extractor, store Store, opts Options) *Runner {
	if opts.MaxSources <= 0 {
		opts.MaxSources = 25
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Runner{
		searcher:  searcher,
		extractor: extractor,
		store:     store,
		opts:      opts,
	}
}

// Run performs one analysis: Pending -> Extracting -> Aggregated ->
// Persisted. A total search failure degrades to an empty observation set
// rather than erroring; only an invalid brand or a failed persistence write
// fails the run. Cancellation is honored up to the persistence write.
func (r *Runner) Run(ctx context.Context, prompt, brand string) (*models.AnalysisSummary, []models.SourceObservation, error) {
	sources := r.fetchSources(ctx, prompt)

	observations, err := r.extractAll(sources, brand)
	if err != nil {
		return nil, nil, err
	}

	summary := analysis.Aggregate(observations, prompt, brand)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	persistCtx, cancel := context.WithTimeout(ctx, r.opts.PersistTimeout)
	defer cancel()
	if err := r.store.InsertAnalysis(persistCtx, &summary, observations); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &summary, observations, nil
}

// fetchSources queries the search collaborator under its timeout. A failed
// call is logged and degrades to zero sources; "found nothing" is a valid,
// low-confidence result, not an error. Per-source loss never surfaces here:
// the collaborator drops unusable entries and returns whatever survived.
func (r *Runner) fetchSources(ctx context.Context, prompt string) []search.Source {
	searchCtx, cancel := context.WithTimeout(ctx, r.opts.SourceTimeout)
	defer cancel()

	sources, err := r.searcher.Search(searchCtx, prompt, r.opts.MaxSources)
	if err != nil {
		slog.Warn("source fetch failed, continuing with empty set", "error", err)
		return nil
	}
	return sources
}

// extractAll fans extraction out over a bounded worker pool and waits for
// every worker to finish before returning. Observation order is completion
// order; aggregation is insensitive to it.
func (r *Runner) extractAll(sources []search.Source, brand string) ([]models.SourceObservation, error) {
	// Validate the brand once up front so an invalid term fails the
	// request before any work happens.
	if ok, _ := validation.ValidateBrand(brand); !ok {
		return nil, analysis.ErrInvalidBrand
	}

	if len(sources) == 0 {
		return nil, nil
	}

	workers := r.opts.Workers
	if workers > len(sources) {
		workers = len(sources)
	}

	jobs := make(chan search.Source, len(sources))
	results := make(chan models.SourceObservation, len(sources))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				obs, err := r.extractor.Extract(src.SourceID, src.RawText, brand)
				if err != nil {
					// Cannot happen after the up-front brand check, but a
					// dropped source must never fail the whole request.
					slog.Warn("extraction failed for source", "source", src.SourceID, "error", err)
					continue
				}
				results <- obs
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)

	wg.Wait()
	close(results)

	observations := make([]models.SourceObservation, 0, len(sources))
	for obs := range results {
		observations = append(observations, obs)
	}
	return observations, nil
}
