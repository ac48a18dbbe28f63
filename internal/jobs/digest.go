package jobs

import (
	"context"
	"log"
	"time"

	"brandpulse/internal/db"
	"brandpulse/internal/email"
)

// Digest periodically emails a rollup of recently completed analyses.
type Digest struct {
	db       *db.DB
	notifier *email.Notifier
	interval time.Duration
}

// NewDigest creates a new digest job.
func NewDigest(database *db.DB, notifier *email.Notifier, interval time.Duration) *Digest {
	return &Digest{
		db:       database,
		notifier: notifier,
		interval: interval,
	}
}

// Start begins the digest loop. Blocks until ctx is cancelled.
func (d *Digest) Start(ctx context.Context) {
	log.Printf("Digest job started (interval: %v)", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("Digest job stopped")
			return
		case <-ticker.C:
			d.send(ctx, last)
			last = time.Now()
		}
	}
}

// send collects analyses created since the previous tick and emails them.
func (d *Digest) send(ctx context.Context, since time.Time) {
	summaries, err := d.db.ListAnalysesSince(ctx, since)
	if err != nil {
		log.Printf("Digest job: failed to list analyses: %v", err)
		return
	}
	if len(summaries) == 0 {
		return
	}

	log.Printf("Digest job: sending rollup of %d analyses", len(summaries))
	d.notifier.SendDigest(summaries)
}
