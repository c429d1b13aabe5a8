package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// recordingObserver captures hook invocations for assertions. Hooks are
// invoked from the run's owning goroutine, so no locking is needed.
type recordingObserver struct {
	starts    []int
	items     []int
	successes []bool
	completes []Summary
}

func (o *recordingObserver) OnStart(totalItems int) {
	o.starts = append(o.starts, totalItems)
}

func (o *recordingObserver) OnItemComplete(index, totalItems int, success bool) {
	o.items = append(o.items, index)
	o.successes = append(o.successes, success)
}

func (o *recordingObserver) OnComplete(result Summary) {
	o.completes = append(o.completes, result)
}

func TestObserver_HooksFireOncePerItem(t *testing.T) {
	obs := &recordingObserver{}
	items := []int{1, 2, 3, 4, 5}

	op := func(ctx context.Context, n int) (int, error) {
		if n == 3 {
			return 0, errors.New("no threes")
		}
		return n, nil
	}

	if _, err := Run(context.Background(), items, op, WithObserver(obs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(obs.starts) != 1 || obs.starts[0] != 5 {
		t.Errorf("OnStart calls = %v, want one call with 5", obs.starts)
	}
	if len(obs.items) != 5 {
		t.Errorf("OnItemComplete fired %d times, want 5", len(obs.items))
	}
	if len(obs.completes) != 1 {
		t.Fatalf("OnComplete fired %d times, want 1", len(obs.completes))
	}

	var failures int
	for _, ok := range obs.successes {
		if !ok {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("observed %d failed completions, want 1", failures)
	}

	final := obs.completes[0]
	if final.SuccessCount != 4 || final.FailedCount != 1 {
		t.Errorf("final summary = %d/%d, want 4/1", final.SuccessCount, final.FailedCount)
	}
}

func TestObserver_EmptyRunStillFiresAllHooks(t *testing.T) {
	obs := &recordingObserver{}

	if _, err := Run(context.Background(), nil, square, WithObserver(obs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(obs.starts) != 1 {
		t.Errorf("OnStart fired %d times, want 1", len(obs.starts))
	}
	if len(obs.items) != 1 {
		t.Errorf("OnItemComplete fired %d times, want 1", len(obs.items))
	}
	if len(obs.completes) != 1 {
		t.Errorf("OnComplete fired %d times, want 1", len(obs.completes))
	}
	if obs.starts[0] != 0 {
		t.Errorf("OnStart total = %d, want 0", obs.starts[0])
	}
}

func TestObserver_RetryAttemptsStaySilent(t *testing.T) {
	obs := &recordingObserver{}
	f := newFlaky(1)

	if _, err := Run(context.Background(), []int{1, 2, 3}, f.op,
		WithRetryAttempts(2),
		WithRetryBackoff(1, 1),
		WithObserver(obs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The caller's observer sees only the main run: one start, one
	// item hook per original item, one completion with the merged
	// result.
	if len(obs.starts) != 1 {
		t.Errorf("OnStart fired %d times, want 1", len(obs.starts))
	}
	if len(obs.items) != 3 {
		t.Errorf("OnItemComplete fired %d times, want 3", len(obs.items))
	}
	if len(obs.completes) != 1 {
		t.Fatalf("OnComplete fired %d times, want 1", len(obs.completes))
	}
	if final := obs.completes[0]; final.FailedCount != 0 {
		t.Errorf("merged summary FailedCount = %d, want 0", final.FailedCount)
	}
}

func TestVerboseObserver_Output(t *testing.T) {
	var buf bytes.Buffer
	obs := NewVerboseObserverTo(&buf)

	if _, err := Run(context.Background(), []int{1, 2}, square, WithObserver(obs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "processing 2 items") {
		t.Errorf("missing start line in output:\n%s", out)
	}
	if !strings.Contains(out, "done:") {
		t.Errorf("missing completion line in output:\n%s", out)
	}
}

func TestSilentObserver_NoPanics(t *testing.T) {
	obs := NewSilentObserver()
	obs.OnStart(10)
	obs.OnItemComplete(0, 10, true)
	obs.OnComplete(Summary{})
}
