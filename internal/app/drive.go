package app

import (
	"time"

	"clothsim/internal/core"
)

// Drive feeds a sequence of frame durations to sim the way an interactive
// host would: each frame is clamped to maxDelta, or split into constant
// ticks when fixed is non-nil. each, if set, is called after every tick with
// the running tick count and the dt that was used. Drive returns the number
// of ticks taken.
func Drive(sim core.Sim, frames []time.Duration, maxDelta time.Duration, fixed *core.FixedStep, each func(tick int, dt float64)) int {
	ticks := 0
	step := func(dt float64) {
		sim.Step(dt)
		ticks++
		if each != nil {
			each(ticks, dt)
		}
	}
	for _, frame := range frames {
		if fixed != nil {
			for n := fixed.Advance(frame); n > 0; n-- {
				step(fixed.Seconds())
			}
			continue
		}
		if dt := core.ClampDelta(frame, maxDelta); dt > 0 {
			step(dt)
		}
	}
	return ticks
}
