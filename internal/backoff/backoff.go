package backoff

import (
	"math/rand"
	"sync"
	"time"
)

// maxShift caps the exponent so the bit shift cannot overflow int64.
const maxShift = 62

// Strategy computes the delay inserted before a retry attempt.
type Strategy interface {
	// NextDelay returns the delay before retry attempt attemptNumber.
	// attemptNumber is 0-indexed: 0 is the first retry after the
	// original failure.
	NextDelay(attemptNumber int) time.Duration

	// Reset clears any per-run state. Stateless strategies treat this
	// as a no-op.
	Reset()
}

// exponential doubles the delay on every attempt: initial * 2^n, capped
// at max.
type exponential struct {
	initial time.Duration
	max     time.Duration
}

func (e *exponential) NextDelay(attemptNumber int) time.Duration {
	return expDelay(attemptNumber, e.initial, e.max)
}

func (e *exponential) Reset() {}

// jittered is exponential backoff with a random multiplier of
// 1 ± factor applied, spreading out retries that would otherwise fire
// in lockstep.
type jittered struct {
	initial time.Duration
	max     time.Duration
	factor  float64
	rng     *rand.Rand
	mu      sync.Mutex
}

func (j *jittered) NextDelay(attemptNumber int) time.Duration {
	base := expDelay(attemptNumber, j.initial, j.max)

	j.mu.Lock()
	mult := 1.0 + (j.rng.Float64()*2-1)*j.factor
	j.mu.Unlock()

	d := time.Duration(float64(base) * mult)
	if d < 0 {
		return 0
	}
	if d > j.max {
		return j.max
	}
	return d
}

func (j *jittered) Reset() {}

// decorrelated implements the AWS decorrelated-jitter scheme:
// sleep = min(max, random(initial, prev*3)). Each delay depends on the
// previous one rather than the attempt number, which breaks up
// synchronized retry waves across tasks.
type decorrelated struct {
	initial time.Duration
	max     time.Duration
	prev    time.Duration
	rng     *rand.Rand
	mu      sync.Mutex
}

func (d *decorrelated) NextDelay(attemptNumber int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if attemptNumber == 0 {
		d.prev = d.initial
		return d.initial
	}

	upper := time.Duration(float64(d.prev) * 3)
	if upper > d.max {
		upper = d.max
	}

	span := upper - d.initial
	if span <= 0 {
		d.prev = d.initial
		return d.initial
	}

	delay := d.initial + time.Duration(d.rng.Int63n(int64(span)))
	d.prev = delay
	return delay
}

func (d *decorrelated) Reset() {
	d.mu.Lock()
	d.prev = d.initial
	d.mu.Unlock()
}

func expDelay(attemptNumber int, initial, max time.Duration) time.Duration {
	if attemptNumber < 0 {
		return 0
	}
	if attemptNumber >= maxShift {
		return max
	}

	d := time.Duration(int64(1)<<uint(attemptNumber)) * initial
	if d > max || d < 0 {
		return max
	}
	return d
}
