package batch

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestBatchResult_SuccessRateBounds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		succeeded int
		want      float64
	}{
		{"empty run", 0, 0, 0.0},
		{"all succeed", 10, 10, 100.0},
		{"none succeed", 10, 0, 0.0},
		{"partial", 8, 2, 25.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBatchResult[int](tt.total, nil)
			for i := 0; i < tt.succeeded; i++ {
				r.recordSuccess(i)
			}
			for i := tt.succeeded; i < tt.total; i++ {
				r.recordFailure(FailureRecord{Index: i})
			}

			got := r.SuccessRate()
			if got != tt.want {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("SuccessRate() = %v, outside [0, 100]", got)
			}
		})
	}
}

func TestBatchResult_ProcessingTimeMS(t *testing.T) {
	r := newBatchResult[int](1, nil)
	r.Duration = 1500 * time.Millisecond

	if got := r.ProcessingTimeMS(); got != 1500 {
		t.Errorf("ProcessingTimeMS() = %d, want 1500", got)
	}
}

func TestBatchResult_SeedsCallerMetadata(t *testing.T) {
	seed := map[string]any{"tool": "web_search", "attempt": 1}
	r := newBatchResult[int](3, seed)

	if r.Metadata["tool"] != "web_search" {
		t.Errorf("metadata tool = %v, want web_search", r.Metadata["tool"])
	}

	// The result owns a copy; mutating it must not touch the seed.
	r.Metadata["tool"] = "other"
	if seed["tool"] != "web_search" {
		t.Error("result metadata aliases the caller's map")
	}
}

func TestPreviewItem_Truncation(t *testing.T) {
	short := previewItem("hello")
	if short != "hello" {
		t.Errorf("previewItem(hello) = %q", short)
	}

	long := previewItem(strings.Repeat("a", 500))
	if got := len([]rune(long)); got != previewLimit+3 {
		t.Errorf("truncated preview is %d runes, want %d", got, previewLimit+3)
	}
	if !strings.HasSuffix(long, "...") {
		t.Errorf("truncated preview %q missing ellipsis", long)
	}

	multibyte := previewItem(strings.Repeat("ü", 200))
	if got := len([]rune(multibyte)); got != previewLimit+3 {
		t.Errorf("multibyte preview is %d runes, want %d", got, previewLimit+3)
	}
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", fmt.Errorf("%w after 5s", ErrItemTimeout), KindTimeout},
		{"panic", &panicError{value: "boom"}, KindPanic},
		{"plain error", errors.New("nope"), "errors.errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failureKind(tt.err); got != tt.want {
				t.Errorf("failureKind() = %q, want %q", got, tt.want)
			}
		})
	}
}
