package batch

import (
	"context"
	"time"
)

// retryFailed re-runs only the items recorded as failed in res, for up
// to cfg.retryAttempts attempts, waiting an exponentially growing delay
// before each one. Each attempt runs with a silent observer, always
// continues on error, and never retries recursively. The loop stops
// early once no failures remain.
//
// On return res holds the merged view: retry successes appended to the
// success list, the failure list replaced by the still-unresolved set,
// counts re-derived. An item that succeeds in any attempt never
// reappears in a later attempt's input.
func retryFailed[T, R any](ctx context.Context, items []T, op Operation[T, R], res *BatchResult[R], cfg *config) error {
	strategy := cfg.backoffStrategy()
	rcfg := cfg.retryConfig()

	failed := res.Failures
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

attempts:
	for attempt := 1; attempt <= cfg.retryAttempts && len(failed) > 0; attempt++ {
		timer.Reset(strategy.NextDelay(attempt - 1))
		select {
		case <-timer.C:
		case <-ctx.Done():
			break attempts
		}

		subItems := make([]T, len(failed))
		origIndex := make([]int, len(failed))
		for i, f := range failed {
			subItems[i] = items[f.Index]
			origIndex[i] = f.Index
		}

		sub, err := runBatch(ctx, subItems, op, rcfg)
		if err != nil {
			return err
		}

		res.Successes = append(res.Successes, sub.Successes...)

		// Failures from the sub-run are indexed into subItems; map
		// them back to positions in the original input.
		next := make([]FailureRecord, 0, len(sub.Failures))
		for _, f := range sub.Failures {
			f.Index = origIndex[f.Index]
			next = append(next, f)
		}
		failed = next
	}

	res.Failures = failed
	res.SuccessCount = len(res.Successes)
	res.FailedCount = len(failed)
	return nil
}
