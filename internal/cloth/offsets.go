package cloth

import "math"

// SpringKind classifies a spring template.
type SpringKind uint8

const (
	// Structural springs join immediate horizontal and vertical neighbors.
	Structural SpringKind = iota
	// Fold springs join joints two cells apart and resist folding.
	Fold
	// Shear springs join diagonal neighbors and resist shearing.
	Shear
)

func (k SpringKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Fold:
		return "fold"
	case Shear:
		return "shear"
	default:
		return "unknown"
	}
}

// SpringOffset is a spring template relative to a joint: the neighbor at
// (i+DI, j+DJ) is pulled toward Rest separation.
type SpringOffset struct {
	DI, DJ int
	Rest   float64
	Kind   SpringKind
}

// buildOffsets returns the 12 spring templates for the given resting
// distances between adjacent columns (h) and rows (v).
func buildOffsets(h, v float64) []SpringOffset {
	diagonal := math.Sqrt(h*h + v*v)
	return []SpringOffset{
		{DI: -1, DJ: 0, Rest: h, Kind: Structural},
		{DI: 1, DJ: 0, Rest: h, Kind: Structural},
		{DI: 0, DJ: -1, Rest: v, Kind: Structural},
		{DI: 0, DJ: 1, Rest: v, Kind: Structural},

		{DI: -2, DJ: 0, Rest: 2 * h, Kind: Fold},
		{DI: 2, DJ: 0, Rest: 2 * h, Kind: Fold},
		{DI: 0, DJ: -2, Rest: 2 * v, Kind: Fold},
		{DI: 0, DJ: 2, Rest: 2 * v, Kind: Fold},

		{DI: -1, DJ: -1, Rest: diagonal, Kind: Shear},
		{DI: -1, DJ: 1, Rest: diagonal, Kind: Shear},
		{DI: 1, DJ: -1, Rest: diagonal, Kind: Shear},
		{DI: 1, DJ: 1, Rest: diagonal, Kind: Shear},
	}
}
