// Package retention prunes old conversion history on a fixed interval.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/metrics"
)

type Cleaner struct {
	repo   db.Repository
	log    *slog.Logger
	maxAge time.Duration
	now    func() time.Time
}

func New(repo db.Repository, log *slog.Logger, maxAge time.Duration) *Cleaner {
	return &Cleaner{repo: repo, log: log, maxAge: maxAge, now: time.Now}
}

// Run cleans once immediately and then every interval until ctx is done.
func (c *Cleaner) Run(ctx context.Context, interval time.Duration) {
	c.cycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cycle(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (c *Cleaner) cycle(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.CleanupCycleDuration.Observe(time.Since(start).Seconds())
	}()

	res, err := c.Cleanup(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "cleanup cycle failed", "error", err)
		return
	}
	c.log.InfoContext(ctx, "cleanup cycle complete",
		"conversions_deleted", res.Conversions,
		"corrections_deleted", res.Corrections,
	)
}

type Result struct {
	Conversions int64
	Corrections int64
}

// Cleanup deletes corrections and then conversions created before now minus
// the retention window, in one transaction. Corrections go first so the count
// excludes rows removed by cascade.
func (c *Cleaner) Cleanup(ctx context.Context) (Result, error) {
	before := c.now().Add(-c.maxAge)
	var res Result

	err := c.repo.WithTx(ctx, func(tx db.Repository) error {
		n, err := tx.DeleteOldCorrections(ctx, before)
		if err != nil {
			return fmt.Errorf("deleting corrections: %w", err)
		}
		res.Corrections = n

		n, err = tx.DeleteOldConversions(ctx, before)
		if err != nil {
			return fmt.Errorf("deleting conversions: %w", err)
		}
		res.Conversions = n
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	metrics.RowsDeletedTotal.WithLabelValues("corrections").Add(float64(res.Corrections))
	metrics.RowsDeletedTotal.WithLabelValues("conversions").Add(float64(res.Conversions))
	return res, nil
}
