// Package workerpool provides a small scoped worker pool for fanning work
// out across a bounded set of goroutines and joining before returning. It
// follows the same feeder + errgroup shape shards.streamSearch uses to fan
// a search out across shards: a bounded semaphore caps concurrency, an
// errgroup tracks goroutine lifetime, and the call blocks until every task
// has returned.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool runs up to Width tasks concurrently.
type Pool struct {
	width int64
}

// New returns a Pool that runs at most width tasks concurrently. A width
// below 1 is treated as 1.
func New(width int) *Pool {
	if width < 1 {
		width = 1
	}
	return &Pool{width: int64(width)}
}

// Width returns the pool's configured concurrency.
func (p *Pool) Width() int { return int(p.width) }

// Scoped runs fn(i) once for every i in [0, n), across at most p.Width()
// goroutines, and blocks until all of them have returned. fn must not
// panic; Scoped does not recover. The scope guarantee (every worker joined
// before Scoped returns) lets callers pass data fn closes over without
// needing it to outlive the call.
func (p *Pool) Scoped(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	ctx := context.Background()
	sem := semaphore.NewWeighted(p.width)
	g, _ := errgroup.WithContext(ctx)

	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			// context.Background() never cancels, so Acquire cannot
			// fail here; if it ever did, task i would be skipped.
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
