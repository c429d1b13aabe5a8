package batch

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kind names recorded on FailureRecord.Kind. Kinds outside this
// list are the dynamic type name of the operation's error.
const (
	KindTimeout = "timeout"
	KindPanic   = "panic"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	// Validation runs before any item is submitted.
	ErrInvalidConfig = errors.New("invalid batch configuration")

	// ErrItemTimeout marks an item whose operation exceeded the
	// per-item timeout. The operation itself may still be running; the
	// engine classifies, it does not tear down.
	ErrItemTimeout = errors.New("operation timed out")

	// errFiltered is the designed failure ParallelFilter uses for items
	// its predicate rejects.
	errFiltered = errors.New("item filtered out")
)

// MapError is the hard error ParallelMap returns when any item failed.
// It embeds the first recorded failure so fail-fast callers see the
// cause without digging through a result.
type MapError struct {
	Failed int
	Total  int
	First  FailureRecord
}

func (e *MapError) Error() string {
	return fmt.Sprintf("parallel map: %d of %d items failed, first failure at item %d: %s",
		e.Failed, e.Total, e.First.Index, e.First.Err)
}

// panicError carries a recovered panic value and its stack so a panicking
// operation is reported like any other per-item failure.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("operation panicked: %v\n%s", e.value, e.stack)
}

// failureKind classifies an operation error into the recorded kind name.
func failureKind(err error) string {
	var pe *panicError
	switch {
	case errors.Is(err, ErrItemTimeout):
		return KindTimeout
	case errors.As(err, &pe):
		return KindPanic
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
	}
}

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
