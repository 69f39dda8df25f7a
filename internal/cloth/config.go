package cloth

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"clothsim/internal/vecmath"
)

var (
	// ErrInvalidGrid reports a grid with fewer than two joints along an axis.
	ErrInvalidGrid = errors.New("cloth: invalid grid dimensions")
	// ErrInvalidExtent reports a non-positive cloth width or height.
	ErrInvalidExtent = errors.New("cloth: invalid cloth size")
	// ErrInvalidMass reports a non-positive mass density.
	ErrInvalidMass = errors.New("cloth: invalid mass per unit area")
	// ErrInvalidStiffness reports a negative or non-finite spring constant.
	ErrInvalidStiffness = errors.New("cloth: invalid spring stiffness")
	// ErrInvalidGravity reports a negative or non-finite gravity magnitude.
	ErrInvalidGravity = errors.New("cloth: invalid gravity magnitude")
)

// Config holds the construction parameters of a cloth.
type Config struct {
	Origin vecmath.Vec3

	ISize float64
	JSize float64

	IDivisions int
	JDivisions int

	SpringK         float64
	MassPerUnitArea float64
	Gravity         float64
}

// DefaultConfig returns a 10x10 cloth with 11x11 joints.
func DefaultConfig() Config {
	return Config{
		ISize:           10,
		JSize:           10,
		IDivisions:      11,
		JDivisions:      11,
		SpringK:         800,
		MassPerUnitArea: 15,
		Gravity:         10,
	}
}

// Validate reports the first construction parameter that would leave the
// simulation with a non-finite spacing or joint mass.
func (c Config) Validate() error {
	if c.IDivisions < 2 || c.JDivisions < 2 {
		return fmt.Errorf("%w: %dx%d, need at least 2x2", ErrInvalidGrid, c.IDivisions, c.JDivisions)
	}
	if !positiveFinite(c.ISize) || !positiveFinite(c.JSize) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidExtent, c.ISize, c.JSize)
	}
	if !positiveFinite(c.MassPerUnitArea) {
		return fmt.Errorf("%w: %g", ErrInvalidMass, c.MassPerUnitArea)
	}
	if c.SpringK < 0 || !finite(c.SpringK) {
		return fmt.Errorf("%w: %g", ErrInvalidStiffness, c.SpringK)
	}
	if c.Gravity < 0 || !finite(c.Gravity) {
		return fmt.Errorf("%w: %g", ErrInvalidGravity, c.Gravity)
	}
	if !c.Origin.IsFinite() {
		return fmt.Errorf("cloth: origin %v is not finite", c.Origin)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparsable values keep their defaults; range checks happen in New.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["i_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.ISize = parsed
		}
	}
	if v, ok := cfg["j_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.JSize = parsed
		}
	}
	if v, ok := cfg["i_divisions"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.IDivisions = parsed
		}
	}
	if v, ok := cfg["j_divisions"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.JDivisions = parsed
		}
	}
	if v, ok := cfg["spring_k"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SpringK = parsed
		}
	}
	if v, ok := cfg["mass_per_unit_area"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.MassPerUnitArea = parsed
		}
	}
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Gravity = parsed
		}
	}
	if v, ok := cfg["origin_x"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Origin.X = parsed
		}
	}
	if v, ok := cfg["origin_y"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Origin.Y = parsed
		}
	}
	if v, ok := cfg["origin_z"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Origin.Z = parsed
		}
	}
	return c
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positiveFinite(v float64) bool { return v > 0 && finite(v) }
