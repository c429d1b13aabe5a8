package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// channelPool fans work out to a fixed set of goroutines all reading the
// same task channel. Workers share memory with the caller, which makes
// this the cheap default for I/O-bound operations.
type channelPool[T, R any] struct {
	size int
}

// NewChannelPool returns a shared-memory pool of size worker goroutines.
func NewChannelPool[T, R any](size int) Pool[T, R] {
	return &channelPool[T, R]{size: size}
}

func (p *channelPool[T, R]) Run(
	ctx context.Context,
	fn WorkFunc[T, R],
	tasks <-chan Task[T],
	outcomes chan<- Outcome[R],
) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < p.size; i++ {
		g.Go(func() error {
			for {
				select {
				case task, ok := <-tasks:
					if !ok {
						return nil
					}
					select {
					case outcomes <- fn(ctx, task):
					case <-ctx.Done():
						return ctx.Err()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	return g.Wait()
}
