package batch

import "context"

// RunChunked partitions items into contiguous chunks of chunkSize (the
// last chunk may be shorter), runs chunkOp over the chunks through the
// worker pool, then flattens chunk outputs back into an item-level
// BatchResult. One chunk is one unit of work: observer hooks report
// progress at chunk granularity.
//
// In the flattened result SuccessCount is the sum of chunk output
// lengths, FailedCount is the remainder against the original item
// count, and TotalItems is the un-chunked item count. A failed chunk is
// reported by a single FailureRecord whose Index is the chunk's first
// item position. Metadata carries chunk_size and total_chunks on top of
// the inner run's entries.
func RunChunked[T, R any](
	ctx context.Context,
	items []T,
	chunkOp ChunkOperation[T, R],
	chunkSize int,
	opts ...Option,
) (*BatchResult[R], error) {
	if chunkSize <= 0 {
		return nil, invalidConfigf("chunk size must be positive, got %d", chunkSize)
	}

	chunks := partition(items, chunkSize)
	op := func(ctx context.Context, chunk []T) ([]R, error) {
		return chunkOp(ctx, chunk)
	}

	inner, err := Run(ctx, chunks, op, opts...)
	if err != nil {
		return nil, err
	}

	res := &BatchResult[R]{
		Successes:  make([]R, 0, len(items)),
		TotalItems: len(items),
		Duration:   inner.Duration,
		Metadata:   inner.Metadata,
	}
	res.Metadata["chunk_size"] = chunkSize
	res.Metadata["total_chunks"] = len(chunks)

	for _, chunkOut := range inner.Successes {
		res.Successes = append(res.Successes, chunkOut...)
	}
	res.SuccessCount = len(res.Successes)
	res.FailedCount = len(items) - res.SuccessCount

	for _, f := range inner.Failures {
		f.Index = f.Index * chunkSize
		res.Failures = append(res.Failures, f)
	}

	return res, nil
}

// partition splits items into contiguous chunks of size; the final
// chunk holds the remainder.
func partition[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
