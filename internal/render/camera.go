package render

import (
	"math"

	"clothsim/internal/vecmath"
)

// Camera is a look-at perspective camera with z as the world up axis.
type Camera struct {
	Eye    vecmath.Vec3
	Target vecmath.Vec3
	Up     vecmath.Vec3

	// Focal is the projection scale in pixels at unit depth, as a fraction
	// of the viewport height.
	Focal float64
	Near  float64
}

// DefaultCamera frames a cloth built around the origin from above and to
// the side.
func DefaultCamera() Camera {
	return Camera{
		Eye:    vecmath.V3(-18, -22, 20),
		Target: vecmath.V3(0, 5, 4),
		Up:     vecmath.V3(0, 0, 1),
		Focal:  1.4,
		Near:   0.1,
	}
}

const maxPitch = 1.5

// Orbit rotates the eye around the target by yaw radians about the up axis
// and by pitch radians toward it. Distance to the target is preserved and
// pitch stops short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := c.Eye.Sub(c.Target)
	r := math.Sqrt(offset.Dot(offset))
	if r == 0 {
		return
	}
	az := math.Atan2(offset.Y, offset.X) + yaw
	el := math.Asin(clamp(offset.Z/r, -1, 1)) + pitch
	el = clamp(el, -maxPitch, maxPitch)
	c.Eye = c.Target.Add(vecmath.V3(
		r*math.Cos(el)*math.Cos(az),
		r*math.Cos(el)*math.Sin(az),
		r*math.Sin(el),
	))
}

// Zoom moves the eye along the view axis by factor (>1 moves away).
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Eye = c.Target.Add(c.Eye.Sub(c.Target).Scale(factor))
}

// Projector maps world points onto a w×h viewport for a fixed camera pose.
type Projector struct {
	eye                 vecmath.Vec3
	right, up, forward  vecmath.Vec3
	focal, near, cx, cy float64

	// Aspect scales screen y; terminals use ~0.5 because cells are tall.
	Aspect float64
}

// Projector builds the camera basis for a viewport.
func (c Camera) Projector(w, h int) Projector {
	forward := c.Target.Sub(c.Eye)
	forward.Normalize()
	up := c.Up
	if up == (vecmath.Vec3{}) {
		up = vecmath.V3(0, 0, 1)
	}
	right := forward.Cross(up)
	right.Normalize()
	camUp := right.Cross(forward)

	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	return Projector{
		eye:     c.Eye,
		right:   right,
		up:      camUp,
		forward: forward,
		focal:   c.Focal * float64(h),
		near:    near,
		cx:      float64(w) / 2,
		cy:      float64(h) / 2,
		Aspect:  1,
	}
}

// Project returns the screen position and view depth of p. ok is false for
// points in front of the near plane.
func (p Projector) Project(v vecmath.Vec3) (x, y, depth float64, ok bool) {
	d := v.Sub(p.eye)
	depth = d.Dot(p.forward)
	if depth < p.near {
		return 0, 0, depth, false
	}
	x = p.cx + p.focal*d.Dot(p.right)/depth
	y = p.cy - p.focal*p.Aspect*d.Dot(p.up)/depth
	return x, y, depth, true
}

// Forward returns the unit view direction.
func (p Projector) Forward() vecmath.Vec3 { return p.forward }

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
