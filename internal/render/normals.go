package render

import (
	"clothsim/internal/core"
	"clothsim/internal/vecmath"
)

// VertexNormals estimates a unit normal per joint from central differences
// across its row and column. Edge joints substitute themselves for the
// missing neighbor. dst is reused when it has the right length.
func VertexNormals(dst []vecmath.Vec3, g core.Grid, pos []vecmath.Vec3) []vecmath.Vec3 {
	if len(dst) != len(pos) {
		dst = make([]vecmath.Vec3, len(pos))
	}
	if len(pos) != g.Len() {
		return dst
	}
	orSelf := func(id, self int) int {
		if id == core.NoNeighbor {
			return self
		}
		return id
	}
	for j := 0; j < g.J; j++ {
		for i := 0; i < g.I; i++ {
			id := g.Index(i, j)
			hMinus := pos[orSelf(g.Index(i-1, j), id)]
			hPlus := pos[orSelf(g.Index(i+1, j), id)]
			vMinus := pos[orSelf(g.Index(i, j-1), id)]
			vPlus := pos[orSelf(g.Index(i, j+1), id)]

			n := vPlus.Sub(vMinus).Cross(hPlus.Sub(hMinus))
			n.Normalize()
			dst[id] = n
		}
	}
	return dst
}

// Edge joins two joint ids.
type Edge struct {
	A, B int
}

// StructuralEdges lists the horizontal then vertical neighbor pairs of g,
// the wireframe drawn by the painters.
func StructuralEdges(g core.Grid) []Edge {
	var edges []Edge
	for j := 0; j < g.J; j++ {
		for i := 0; i+1 < g.I; i++ {
			edges = append(edges, Edge{A: g.Index(i, j), B: g.Index(i+1, j)})
		}
	}
	for j := 0; j+1 < g.J; j++ {
		for i := 0; i < g.I; i++ {
			edges = append(edges, Edge{A: g.Index(i, j), B: g.Index(i, j+1)})
		}
	}
	return edges
}
