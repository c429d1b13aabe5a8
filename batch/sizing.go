package batch

import (
	"github.com/fmogensen/agentswarm-tools-sub002/internal/cpu"
)

// ExecutorKind selects the worker isolation model for a run.
type ExecutorKind int

const (
	// KindIO uses shared-memory workers reading a common task channel,
	// optimal for I/O-bound operations. This is the default.
	KindIO ExecutorKind = iota

	// KindCPU uses a fixed recycled worker pool, optimal for CPU-bound
	// operations.
	KindCPU
)

func (k ExecutorKind) String() string {
	if k == KindCPU {
		return "cpu"
	}
	return "io"
}

// OperationCategory classifies a chunk operation's dominant cost so
// RecommendedChunkSize can pick a sensible base size.
type OperationCategory int

const (
	// CategoryDefault is used when the caller declares nothing.
	CategoryDefault OperationCategory = iota
	// CategoryNetwork covers network-call-like operations.
	CategoryNetwork
	// CategoryFileIO covers local file I/O.
	CategoryFileIO
	// CategoryCompute covers CPU-heavy computation.
	CategoryCompute
	// CategoryMedia covers memory-heavy media processing.
	CategoryMedia
)

// RecommendedWorkerCount returns a worker count suited to the executor
// kind: twice the logical CPU count for I/O-bound work, the CPU count
// itself for CPU-bound work. Never less than 1.
func RecommendedWorkerCount(kind ExecutorKind) int {
	n := cpu.Logical()
	if kind == KindCPU {
		return max(n, 1)
	}
	return max(2*n, 1)
}

// RecommendedChunkSize returns a chunk size for RunChunked based on the
// operation category and total item count. Small inputs are never
// chunked below the whole set, and mid-sized inputs use half the
// category base.
func RecommendedChunkSize(category OperationCategory, totalItems int) int {
	var base int
	switch category {
	case CategoryNetwork:
		base = 50
	case CategoryFileIO:
		base = 100
	case CategoryCompute:
		base = 20
	case CategoryMedia:
		base = 10
	default:
		base = 50
	}

	switch {
	case totalItems < 10:
		return totalItems
	case totalItems < 100:
		return max(1, base/2)
	default:
		return base
	}
}
