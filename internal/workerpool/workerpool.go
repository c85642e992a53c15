// Package workerpool provides the bounded data-parallel fan-out used by
// selector encryption and reply decryption (spec §5): independent units of
// work, a single write-one/read-after-join failure flag, no cross-worker
// synchronization beyond the final join.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Default is the worker count used when a caller does not specify one:
// one worker per logical CPU.
func Default() int {
	return runtime.GOMAXPROCS(0)
}

// Run calls fn(i) for every i in [0, n), with at most `workers` calls
// in flight at once (Default() if workers <= 0). Once a call has returned
// an error, indices not yet started are skipped. It blocks until every
// started call has returned, then returns the first non-nil error, if any —
// errgroup's internal sync.Once is the write-one flag, g.Wait() is the
// join. The call index that produced the error is not distinguishable
// from the outside, matching the aggregate-failure contract required of
// reply decoding.
func Run(n, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = Default()
	}
	if n <= 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	sem := semaphore.NewWeighted(int64(workers))

	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return fn(i)
		})
	}

	return g.Wait()
}
