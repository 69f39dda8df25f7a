package cloth

import (
	"math"

	"clothsim/internal/vecmath"
)

// Stats summarises the current state for diagnostics and parameter sweeps.
type Stats struct {
	Ticks         int
	Elapsed       float64
	KineticEnergy float64
	MaxSpeed      float64
	Min, Max      vecmath.Vec3
	Finite        bool
}

// Stats computes a summary over all joints.
func (c *Cloth) Stats() Stats {
	s := Stats{
		Ticks:   c.ticks,
		Elapsed: c.elapsed,
		Min:     vecmath.V3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max:     vecmath.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
		Finite:  true,
	}
	for id, p := range c.pos {
		v := c.vel[id]
		if !p.IsFinite() || !v.IsFinite() {
			s.Finite = false
			continue
		}
		speedSq := v.Dot(v)
		s.KineticEnergy += 0.5 * c.jointMass * speedSq
		if speed := math.Sqrt(speedSq); speed > s.MaxSpeed {
			s.MaxSpeed = speed
		}
		s.Min = vecmath.V3(math.Min(s.Min.X, p.X), math.Min(s.Min.Y, p.Y), math.Min(s.Min.Z, p.Z))
		s.Max = vecmath.V3(math.Max(s.Max.X, p.X), math.Max(s.Max.Y, p.Y), math.Max(s.Max.Z, p.Z))
	}
	return s
}

// Sag returns how far the lowest joint has dropped below the cloth's
// starting height.
func (c *Cloth) Sag() float64 {
	start := c.cfg.Origin.Z + c.cfg.JSize
	return start - c.Stats().Min.Z
}
