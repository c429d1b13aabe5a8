package batch

import "context"

// ParallelMap runs op over items with fail-fast semantics: submission
// stops at the first failure and a non-nil *MapError is returned when
// anything failed, embedding the first recorded failure. On success it
// returns just the outputs, in completion order.
func ParallelMap[T, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) ([]R, error) {
	opts = append(opts, WithContinueOnError(false), WithObserver(NewSilentObserver()))

	res, err := Run(ctx, items, op, opts...)
	if err != nil {
		return nil, err
	}

	if res.FailedCount > 0 {
		return nil, &MapError{
			Failed: res.FailedCount,
			Total:  res.TotalItems,
			First:  res.Failures[0],
		}
	}
	return res.Successes, nil
}

// ParallelFilter evaluates pred over items in parallel and returns the
// items that passed, in completion order. A predicate returning false
// or an error excludes the item; exclusion is a designed outcome, not a
// run failure, so the whole input is always evaluated.
func ParallelFilter[T any](ctx context.Context, items []T, pred Predicate[T], opts ...Option) ([]T, error) {
	opts = append(opts, WithContinueOnError(true), WithObserver(NewSilentObserver()))

	op := func(ctx context.Context, item T) (T, error) {
		ok, err := pred(ctx, item)
		if err != nil {
			var zero T
			return zero, err
		}
		if !ok {
			var zero T
			return zero, errFiltered
		}
		return item, nil
	}

	res, err := Run(ctx, items, op, opts...)
	if err != nil {
		return nil, err
	}
	return res.Successes, nil
}
