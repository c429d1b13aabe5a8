package backoff

import (
	"math/rand"
	"time"
)

// Kind selects the backoff algorithm used between retry attempts.
type Kind int

const (
	// Exponential is plain exponential backoff (default).
	Exponential Kind = iota
	// Jittered adds random jitter around the exponential delay.
	Jittered
	// Decorrelated uses AWS-style decorrelated jitter.
	Decorrelated
)

// New builds a Strategy for the given kind. jitterFactor only applies to
// the Jittered kind and is clamped to [0, 1].
func New(kind Kind, initial, max time.Duration, jitterFactor float64) Strategy {
	switch kind {
	case Jittered:
		if jitterFactor < 0 {
			jitterFactor = 0
		}
		if jitterFactor > 1 {
			jitterFactor = 1
		}
		return &jittered{
			initial: initial,
			max:     max,
			factor:  jitterFactor,
			rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
		}

	case Decorrelated:
		return &decorrelated{
			initial: initial,
			max:     max,
			prev:    initial,
			rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
		}

	default:
		return &exponential{initial: initial, max: max}
	}
}
