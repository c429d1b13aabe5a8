package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/fmogensen/agentswarm-tools-sub002/internal/workers"
)

// Run executes op over every item using a capped pool of parallel
// workers and reports the aggregate outcome. Per-item failures are
// recorded in the result, never returned as an error; the error return
// is reserved for configuration validation and pool infrastructure
// failures.
//
// Successes land in the result in completion order, not submission
// order. Observer hooks fire throughout: OnStart before submission,
// OnItemComplete per resolved item, OnComplete at the very end. When
// WithRetryAttempts is set, failed items are re-run with exponential
// backoff before the result is finalized.
func Run[T, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) (*BatchResult[R], error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := runBatch(ctx, items, op, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.retryAttempts > 0 && res.FailedCount > 0 {
		if err := retryFailed(ctx, items, op, res, cfg); err != nil {
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	cfg.echo(res.Metadata, cfg.workerCount())
	cfg.observer.OnComplete(res.Summary())
	return res, nil
}

// runBatch is one pass over items: no retries, no metadata echo. Both
// the main run and each retry attempt go through here.
func runBatch[T, R any](ctx context.Context, items []T, op Operation[T, R], cfg *config) (*BatchResult[R], error) {
	res := newBatchResult[R](len(items), cfg.metadata)
	obs := cfg.observer

	obs.OnStart(len(items))
	if len(items) == 0 {
		// The hook contract promises all three hooks for every run,
		// including an empty one.
		obs.OnItemComplete(0, 0, true)
		return res, nil
	}

	numWorkers := min(cfg.workerCount(), len(items))
	pool, err := newPool[T, R](cfg.kind, numWorkers)
	if err != nil {
		return nil, err
	}

	tasks := make(chan workers.Task[T], numWorkers)
	outcomes := make(chan workers.Outcome[R], len(items))
	stop := make(chan struct{})

	// Dispatcher: hands items to the pool until the input is exhausted,
	// the stop signal fires, or the context ends. Items not yet queued
	// when dispatch stops are skipped entirely; items already in the
	// task queue still run and are recorded.
	go func() {
		defer close(tasks)
		for i, item := range items {
			if cfg.limiter != nil {
				if err := cfg.limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case tasks <- workers.Task[T]{Index: i, Item: item}:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	poolDone := make(chan error, 1)
	go func() {
		poolDone <- pool.Run(ctx, runItem(op, cfg.timeoutPerItem), tasks, outcomes)
		close(outcomes)
	}()

	// Drain outcomes on this goroutine only. The result and the
	// observer see a single writer, so neither needs locking.
	stopped := false
	for out := range outcomes {
		if out.Err != nil {
			res.recordFailure(failureRecord(out.Index, items[out.Index], out.Err))
		} else {
			res.recordSuccess(out.Value)
		}
		obs.OnItemComplete(out.Index, len(items), out.Err == nil)

		if out.Err != nil && !cfg.continueOnErr && !stopped {
			stopped = true
			close(stop)
		}
	}

	if err := <-poolDone; err != nil &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, errors.Wrap(err, "batch worker pool")
	}
	return res, nil
}

// newPool builds the pool implementation for the executor kind.
func newPool[T, R any](kind ExecutorKind, size int) (workers.Pool[T, R], error) {
	if kind == KindCPU {
		return workers.NewAntsPool[T, R](size)
	}
	return workers.NewChannelPool[T, R](size), nil
}

// runItem wraps the user operation with panic recovery and, when set,
// the per-item timeout.
func runItem[T, R any](op Operation[T, R], timeout time.Duration) workers.WorkFunc[T, R] {
	return func(ctx context.Context, task workers.Task[T]) workers.Outcome[R] {
		if timeout <= 0 {
			value, err := invoke(ctx, op, task.Item)
			return workers.Outcome[R]{Index: task.Index, Value: value, Err: err}
		}

		done := make(chan workers.Outcome[R], 1)
		go func() {
			value, err := invoke(ctx, op, task.Item)
			done <- workers.Outcome[R]{Index: task.Index, Value: value, Err: err}
		}()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case out := <-done:
			return out
		case <-timer.C:
			// The operation keeps running in the background; an overrun
			// is classified, not torn down.
			return workers.Outcome[R]{
				Index: task.Index,
				Err:   fmt.Errorf("%w after %s", ErrItemTimeout, timeout),
			}
		}
	}
}

// invoke calls op with panic recovery so one bad item cannot crash a
// worker.
func invoke[T, R any](ctx context.Context, op Operation[T, R], item T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &panicError{value: r, stack: buf[:n]}
		}
	}()

	return op(ctx, item)
}
