package batch

import "context"

// Operation maps one item to one result. The executor calls it at most
// once per item per attempt; a returned error marks the item failed
// without aborting the run.
type Operation[T, R any] func(ctx context.Context, item T) (R, error)

// ChunkOperation maps one contiguous chunk of items to their results.
// Used by RunChunked when the underlying work is naturally batch
// oriented, such as one network call that handles many items at once.
type ChunkOperation[T, R any] func(ctx context.Context, items []T) ([]R, error)

// Predicate reports whether an item should be kept by ParallelFilter.
// A returned error counts as "drop", not as a run failure.
type Predicate[T any] func(ctx context.Context, item T) (bool, error)
