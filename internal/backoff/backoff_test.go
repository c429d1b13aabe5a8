package backoff

import (
	"testing"
	"time"
)

func TestExponential_NextDelay(t *testing.T) {
	tests := []struct {
		name    string
		initial time.Duration
		max     time.Duration
		attempt int
		want    time.Duration
	}{
		{
			name:    "first retry uses initial delay",
			initial: 100 * time.Millisecond,
			max:     10 * time.Second,
			attempt: 0,
			want:    100 * time.Millisecond,
		},
		{
			name:    "second retry doubles",
			initial: 100 * time.Millisecond,
			max:     10 * time.Second,
			attempt: 1,
			want:    200 * time.Millisecond,
		},
		{
			name:    "fourth retry is 8x",
			initial: 100 * time.Millisecond,
			max:     10 * time.Second,
			attempt: 3,
			want:    800 * time.Millisecond,
		},
		{
			name:    "capped at max",
			initial: 1 * time.Second,
			max:     3 * time.Second,
			attempt: 5,
			want:    3 * time.Second,
		},
		{
			name:    "negative attempt yields zero",
			initial: 1 * time.Second,
			max:     3 * time.Second,
			attempt: -1,
			want:    0,
		},
		{
			name:    "huge attempt does not overflow",
			initial: 1 * time.Second,
			max:     30 * time.Second,
			attempt: 500,
			want:    30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Exponential, tt.initial, tt.max, 0)
			if got := s.NextDelay(tt.attempt); got != tt.want {
				t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestJittered_StaysWithinBounds(t *testing.T) {
	initial := 100 * time.Millisecond
	max := 10 * time.Second
	s := New(Jittered, initial, max, 0.2)

	for attempt := 0; attempt < 8; attempt++ {
		base := New(Exponential, initial, max, 0).NextDelay(attempt)
		lo := time.Duration(float64(base) * 0.8)
		hi := time.Duration(float64(base) * 1.2)
		if hi > max {
			hi = max
		}

		for i := 0; i < 20; i++ {
			d := s.NextDelay(attempt)
			if d < lo || d > hi {
				t.Fatalf("attempt %d: delay %v outside [%v, %v]", attempt, d, lo, hi)
			}
		}
	}
}

func TestDecorrelated_FirstDelayIsInitial(t *testing.T) {
	initial := 100 * time.Millisecond
	s := New(Decorrelated, initial, 10*time.Second, 0)

	if d := s.NextDelay(0); d != initial {
		t.Errorf("first delay = %v, want %v", d, initial)
	}
}

func TestDecorrelated_BoundedByMax(t *testing.T) {
	initial := 1 * time.Second
	max := 2 * time.Second
	s := New(Decorrelated, initial, max, 0)

	for attempt := 0; attempt < 20; attempt++ {
		d := s.NextDelay(attempt)
		if d < initial || d > max {
			t.Fatalf("attempt %d: delay %v outside [%v, %v]", attempt, d, initial, max)
		}
	}
}

func TestDecorrelated_HasVariation(t *testing.T) {
	initial := 100 * time.Millisecond
	max := 10 * time.Second

	delays := make([]time.Duration, 50)
	for i := range delays {
		s := New(Decorrelated, initial, max, 0)
		s.NextDelay(0)
		delays[i] = s.NextDelay(1)
	}

	allSame := true
	for i := 1; i < len(delays); i++ {
		if delays[i] != delays[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("expected variation across decorrelated jitter delays, all were identical")
	}
}

func TestDecorrelated_ResetRestartsSequence(t *testing.T) {
	initial := 200 * time.Millisecond
	s := New(Decorrelated, initial, 10*time.Second, 0)

	s.NextDelay(0)
	s.NextDelay(1)
	s.NextDelay(2)
	s.Reset()

	if d := s.NextDelay(0); d != initial {
		t.Errorf("delay after Reset = %v, want %v", d, initial)
	}
}
