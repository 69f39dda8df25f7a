package render

import (
	"image/color"
	"math"

	"clothsim/internal/core"
	"clothsim/internal/vecmath"
)

type lockChecker interface {
	IsJointLocked(i, j int) bool
}

// Point is a joint after projection and lighting.
type Point struct {
	X, Y    float64
	Depth   float64
	Visible bool
	Locked  bool
	Color   color.RGBA
}

// Scene turns simulation positions into drawable points. It keeps its
// buffers between frames.
type Scene struct {
	Camera Camera
	Light  Light

	grid    core.Grid
	edges   []Edge
	normals []vecmath.Vec3
	points  []Point
}

// NewScene prepares buffers for a cloth of the given grid size.
func NewScene(size core.Size) *Scene {
	g := core.NewGrid(size.I, size.J)
	return &Scene{
		Camera: DefaultCamera(),
		Light:  DefaultLight(),
		grid:   g,
		edges:  StructuralEdges(g),
		points: make([]Point, g.Len()),
	}
}

// Edges returns the wireframe edges by joint id.
func (s *Scene) Edges() []Edge { return s.edges }

// Normals returns the normals computed by the last Build.
func (s *Scene) Normals() []vecmath.Vec3 { return s.normals }

// Build projects and shades every joint of sim for proj.
func (s *Scene) Build(sim core.Sim, proj Projector) []Point {
	pos := sim.Positions()
	if len(pos) != s.grid.Len() {
		return nil
	}
	s.normals = VertexNormals(s.normals, s.grid, pos)
	locks, _ := sim.(lockChecker)

	near, far := math.Inf(1), math.Inf(-1)
	for id, p := range pos {
		x, y, depth, ok := proj.Project(p)
		pt := Point{X: x, Y: y, Depth: depth, Visible: ok}
		if locks != nil {
			i, j := s.grid.Coords(id)
			pt.Locked = locks.IsJointLocked(i, j)
		}
		if ok {
			near = math.Min(near, depth)
			far = math.Max(far, depth)
		}
		s.points[id] = pt
	}

	span := far - near
	for id := range s.points {
		pt := &s.points[id]
		base := ClothColor
		if pt.Locked {
			base = LockedColor
		}
		col := s.Light.Shade(base, s.normals[id])
		if pt.Visible && span > 0 {
			col = Fog(col, (pt.Depth-near)/span)
		}
		pt.Color = col
	}
	return s.points
}
