// Package batch runs a caller-supplied operation over a collection of
// items with a capped pool of parallel workers, aggregating successes
// and failures into a single report.
//
// The primary entry point is Run, which applies an Operation[T, R] to
// every item and returns a BatchResult[R]. Per-item failures, panics
// and timeouts are recorded in the result rather than aborting the run;
// the error return of Run is reserved for invalid configuration and
// failures of the pool infrastructure itself.
//
// # Basic Usage
//
//	res, err := batch.Run(ctx, items, func(ctx context.Context, u string) (Page, error) {
//	    return fetch(ctx, u)
//	}, batch.WithMaxWorkers(8))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d/%d succeeded\n", res.SuccessCount, res.TotalItems)
//
// Successes are collected in completion order, not submission order.
// Callers that need to line results up with inputs should carry the
// item (or its index) inside their result value.
//
// # Executor Kinds
//
// WithExecutorKind picks the worker model: KindIO (the default) fans
// work out to goroutines reading a shared channel and sizes the pool at
// twice the logical CPU count; KindCPU runs on a fixed recycled pool
// sized at the CPU count. RecommendedWorkerCount exposes the sizing
// rule directly.
//
// # Failure Policy and Retries
//
// WithContinueOnError(false) stops handing out new work after the first
// failure; items already dispatched still run and are recorded.
// WithRetryAttempts(n) re-runs only the failed items up to n more
// times, with exponential backoff between attempts (configurable via
// WithRetryBackoff and WithBackoffKind). WithTimeoutPerItem bounds how
// long a single operation may take before being recorded as a timeout
// failure; the operation is not forcibly cancelled.
//
// # Progress Observation
//
// A ProgressObserver receives OnStart, OnItemComplete and OnComplete
// hooks for every run. Stock implementations: VerboseObserver (colored
// log lines, the default), SilentObserver, ProgressBarObserver (an
// in-place terminal bar) and LogObserver (zap). Hooks are invoked from
// the single goroutine that owns the run, so custom observers need no
// locking.
//
// # Chunked and Convenience Forms
//
// RunChunked partitions the input into fixed-size chunks for operations
// that are naturally batch oriented, then flattens chunk outputs back
// to an item-level result. ParallelMap is the fail-fast form that
// returns an error when anything failed; ParallelFilter keeps the items
// a predicate accepts.
package batch
