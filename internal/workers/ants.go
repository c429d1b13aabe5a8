package workers

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

// antsPool executes tasks on a fixed-capacity ants pool. Worker
// goroutines are recycled between items instead of reading a shared
// channel, which keeps scheduling overhead flat for CPU-bound work.
type antsPool[T, R any] struct {
	pool *ants.Pool
}

// NewAntsPool constructs a fixed pool of the given capacity. A failure
// here is a pool infrastructure failure and surfaces before any work is
// submitted.
func NewAntsPool[T, R any](size int) (Pool[T, R], error) {
	// ants treats a nonpositive size as an unbounded pool; the executor
	// always wants a hard cap.
	if size <= 0 {
		return nil, errors.Errorf("worker pool size must be positive, got %d", size)
	}

	pl, err := ants.NewPool(size)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	return &antsPool[T, R]{pool: pl}, nil
}

// Run submits every task from the channel to the ants pool and waits for
// all submitted work to drain. Submit blocks while the pool is saturated,
// so the task channel provides natural backpressure.
func (p *antsPool[T, R]) Run(
	ctx context.Context,
	fn WorkFunc[T, R],
	tasks <-chan Task[T],
	outcomes chan<- Outcome[R],
) error {
	defer p.pool.Release()

	var wg sync.WaitGroup
	for task := range tasks {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			select {
			case outcomes <- fn(ctx, task):
			case <-ctx.Done():
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return errors.Wrap(err, "submit to worker pool")
		}
	}

	wg.Wait()
	return nil
}
