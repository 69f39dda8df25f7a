package render

import (
	"image/color"
	"math"

	"clothsim/internal/vecmath"
)

// Light is a directional light with an ambient floor.
type Light struct {
	// Dir points from the surface toward the light and must be unit length.
	Dir     vecmath.Vec3
	Ambient float64
}

// DefaultLight approximates a spot placed high to the right of the scene
// over a half-strength ambient term.
func DefaultLight() Light {
	dir := vecmath.V3(150, -80, 50)
	dir.Normalize()
	return Light{Dir: dir, Ambient: 0.5}
}

// Intensity returns the two-sided diffuse term for normal n in [Ambient, 1].
// The cloth has no back face, so both sides light the same.
func (l Light) Intensity(n vecmath.Vec3) float64 {
	diffuse := math.Abs(n.Dot(l.Dir))
	return clamp01(l.Ambient + (1-l.Ambient)*diffuse)
}

// Shade scales base by the light intensity for normal n, keeping alpha.
func (l Light) Shade(base color.RGBA, n vecmath.Vec3) color.RGBA {
	f := l.Intensity(n)
	return color.RGBA{
		R: scaleColorComponent(base.R, f),
		G: scaleColorComponent(base.G, f),
		B: scaleColorComponent(base.B, f),
		A: base.A,
	}
}

// ClothColor is the base tint of the fabric.
var ClothColor = color.RGBA{R: 200, G: 70, B: 60, A: 255}

// LockedColor marks pinned joints.
var LockedColor = color.RGBA{R: 250, G: 220, B: 80, A: 255}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// Background is the clear colour both painters fade distant geometry into.
var Background = color.RGBA{R: 18, G: 18, B: 24, A: 255}

// Fog blends c toward Background by t in [0, 1] scaled by 0.6 so the far
// edge of the cloth never vanishes completely.
func Fog(c color.RGBA, t float64) color.RGBA {
	return lerpRGBA(c, Background, 0.6*clamp01(t))
}
