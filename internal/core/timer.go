package core

import "time"

// FixedStep accumulates wall-clock time and hands it out in whole ticks of a
// constant duration.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	maxSteps    int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{maxSteps: 8}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Seconds returns the tick length in seconds, the dt handed to Sim.Step.
func (f *FixedStep) Seconds() float64 { return f.step.Seconds() }

// Advance adds elapsed to the accumulator and returns how many ticks are due.
// At most maxSteps ticks are returned per call; the surplus is dropped so a
// stalled host does not spiral.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	f.accumulator += elapsed
	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
		if n == f.maxSteps {
			f.accumulator = 0
			break
		}
	}
	return n
}

// DefaultMaxDelta is the frame gap cap used by the interactive hosts.
const DefaultMaxDelta = time.Second / 20

// FrameClock measures the time between frames and caps it, so that a long
// pause does not hand the integrator an unstable dt.
type FrameClock struct {
	MaxDelta time.Duration
	last     time.Time
}

// NewFrameClock returns a clock capping deltas at maxDelta. Non-positive
// values select DefaultMaxDelta.
func NewFrameClock(maxDelta time.Duration) *FrameClock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &FrameClock{MaxDelta: maxDelta}
}

// Tick records now and returns the clamped delta since the previous tick in
// seconds. The first tick returns 0.
func (c *FrameClock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	return ClampDelta(delta, c.MaxDelta)
}

// Reset forgets the previous frame time.
func (c *FrameClock) Reset() { c.last = time.Time{} }

// ClampDelta converts delta to seconds, bounded to [0, max].
func ClampDelta(delta, max time.Duration) float64 {
	if delta < 0 {
		delta = 0
	}
	if max > 0 && delta > max {
		delta = max
	}
	return delta.Seconds()
}
