package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the per-engine goroutine limit for parallel steps.
const DefaultWorkers = 16

// Barrier fans a batch of independent jobs out over a bounded set of
// goroutines and joins them. Jobs of one batch must write disjoint cells.
type Barrier struct {
	limit int
}

// NewBarrier returns a Barrier running at most limit jobs at once.
func NewBarrier(limit int) *Barrier {
	if limit <= 0 {
		limit = DefaultWorkers
	}
	return &Barrier{limit: limit}
}

// Limit reports the concurrency bound.
func (b *Barrier) Limit() int { return b.limit }

// Run executes job(ctx, i) for i in [0, n) and blocks until all of them have
// returned. The first job error cancels the remaining jobs and is returned;
// cancellation of ctx is returned as ctx.Err() instead of being swallowed.
func (b *Barrier) Run(ctx context.Context, n int, job func(ctx context.Context, i int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return job(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
