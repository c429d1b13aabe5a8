// Package workers provides the pool implementations the batch executor
// dispatches work through. Two strategies exist: a channel-fed pool of
// plain goroutines for I/O-heavy work, and an ants-backed fixed pool for
// CPU-heavy work where worker goroutines are reused across items.
package workers

import "context"

// Task is one unit of work handed to a pool, carrying the item's position
// in the original input.
type Task[T any] struct {
	Index int
	Item  T
}

// Outcome is the resolved result of one Task. Exactly one Outcome is
// produced per delivered Task, whether the work succeeded or failed.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

// WorkFunc executes one task and reports its outcome. Implementations
// must not panic; recovery happens above this layer.
type WorkFunc[T, R any] func(ctx context.Context, task Task[T]) Outcome[R]

// Pool runs tasks from a channel and delivers outcomes until the task
// channel is closed and drained. Run blocks until every delivered task
// has produced an outcome. The error return reports pool infrastructure
// failure only, never per-task failure.
type Pool[T, R any] interface {
	Run(ctx context.Context, fn WorkFunc[T, R], tasks <-chan Task[T], outcomes chan<- Outcome[R]) error
}
