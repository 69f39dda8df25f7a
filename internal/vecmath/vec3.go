package vecmath

import "math"

// NormEpsilon is added to every magnitude so Normalize never divides by zero.
const NormEpsilon = 1e-6

// Vec3 is a float64 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for a Vec3 literal.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v.X, s * v.Y, s * v.Z}
}

func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the right-handed cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Norm returns the Euclidean length plus NormEpsilon.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X+v.Y*v.Y+v.Z*v.Z) + NormEpsilon
}

// Normalize scales v in place to unit length and returns the magnitude it
// had before, as reported by Norm. Spring code uses the result as the
// separation distance, so it carries the same +NormEpsilon offset.
func (v *Vec3) Normalize() float64 {
	n := v.Norm()
	v.X /= n
	v.Y /= n
	v.Z /= n
	return n
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
