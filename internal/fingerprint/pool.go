package fingerprint

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fingerprints/internal/progress"
)

// runTasks calls fn for every index in [0, n) on at most workers goroutines
// and reports the completed fraction to cb. It stops scheduling new tasks
// once ctx is done and returns the context error.
func runTasks(ctx context.Context, n, workers int, cb progress.ProgressCallback, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		if cb == nil {
			return
		}
		mu.Lock()
		done++
		cb(float64(done) / float64(n))
		mu.Unlock()
	}

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
