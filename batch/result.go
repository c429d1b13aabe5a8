package batch

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// previewLimit bounds how much of a failed item is rendered into its
// FailureRecord, so huge items cannot blow up memory or logs.
const previewLimit = 80

// FailureRecord describes one item whose operation failed.
type FailureRecord struct {
	// Index is the item's zero-based position in the original input,
	// stable regardless of completion order.
	Index int

	// ItemPreview is a truncated rendering of the failed item, kept
	// only for failure reporting.
	ItemPreview string

	// Err is the human-readable failure cause.
	Err string

	// Kind names the failure category: "timeout", "panic", or the
	// error's concrete type name.
	Kind string
}

// BatchResult is the aggregate report of one batch run. It is mutated
// only by the executor that owns the run and is immutable once returned.
type BatchResult[R any] struct {
	// Successes holds operation outputs in completion order, not
	// submission order. Callers needing submission-order alignment must
	// carry the original index inside their own result values.
	Successes []R

	// Failures holds one record per failed item.
	Failures []FailureRecord

	// TotalItems is the count of items originally submitted, set once
	// at construction.
	TotalItems int

	SuccessCount int
	FailedCount  int

	// Duration is the wall-clock time of the whole run, including any
	// retry attempts.
	Duration time.Duration

	// Metadata is a free-form map seeded from caller metadata; the
	// engine echoes its effective configuration into it.
	Metadata map[string]any
}

func newBatchResult[R any](totalItems int, meta map[string]any) *BatchResult[R] {
	md := make(map[string]any, len(meta)+6)
	for k, v := range meta {
		md[k] = v
	}
	return &BatchResult[R]{
		Successes:  make([]R, 0, totalItems),
		TotalItems: totalItems,
		Metadata:   md,
	}
}

func (r *BatchResult[R]) recordSuccess(value R) {
	r.Successes = append(r.Successes, value)
	r.SuccessCount++
}

func (r *BatchResult[R]) recordFailure(rec FailureRecord) {
	r.Failures = append(r.Failures, rec)
	r.FailedCount++
}

// SuccessRate returns the percentage of submitted items that succeeded,
// in [0, 100]. It is 0 for an empty run.
func (r *BatchResult[R]) SuccessRate() float64 {
	if r.TotalItems == 0 {
		return 0.0
	}
	return float64(r.SuccessCount) / float64(r.TotalItems) * 100
}

// ProcessingTimeMS returns the run duration in whole milliseconds.
func (r *BatchResult[R]) ProcessingTimeMS() int64 {
	return r.Duration.Milliseconds()
}

// Summary returns the non-generic view of the result handed to
// ProgressObserver.OnComplete and RenderSummary.
func (r *BatchResult[R]) Summary() Summary {
	return Summary{
		TotalItems:   r.TotalItems,
		SuccessCount: r.SuccessCount,
		FailedCount:  r.FailedCount,
		Duration:     r.Duration,
		SuccessRate:  r.SuccessRate(),
		Failures:     r.Failures,
		Metadata:     r.Metadata,
	}
}

// Summary is the type-erased report of a completed run.
type Summary struct {
	TotalItems   int
	SuccessCount int
	FailedCount  int
	Duration     time.Duration
	SuccessRate  float64
	Failures     []FailureRecord
	Metadata     map[string]any
}

// previewItem renders an item for failure reporting, truncated to
// previewLimit runes.
func previewItem(item any) string {
	s := fmt.Sprintf("%v", item)
	if utf8.RuneCountInString(s) <= previewLimit {
		return s
	}

	runes := []rune(s)
	return string(runes[:previewLimit]) + "..."
}

func failureRecord(index int, item any, err error) FailureRecord {
	return FailureRecord{
		Index:       index,
		ItemPreview: previewItem(item),
		Err:         err.Error(),
		Kind:        failureKind(err),
	}
}
