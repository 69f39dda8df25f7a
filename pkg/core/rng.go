package core

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Jitter returns base scaled by a uniform factor in [1-spread, 1+spread].
// Negative spreads are treated as zero.
func (r *RNG) Jitter(base time.Duration, spread float64) time.Duration {
	if spread <= 0 {
		return base
	}
	f := 1 + spread*(2*r.r.Float64()-1)
	if f < 0 {
		f = 0
	}
	return time.Duration(float64(base) * f)
}

// FrameTimes produces n jittered frame durations around base, emulating a
// host whose frames do not arrive on a perfect cadence.
func (r *RNG) FrameTimes(n int, base time.Duration, spread float64) []time.Duration {
	if n <= 0 {
		return nil
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = r.Jitter(base, spread)
	}
	return out
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
