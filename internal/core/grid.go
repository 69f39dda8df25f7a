package core

// NoNeighbor is returned by Grid.Index for coordinates outside the grid.
const NoNeighbor = -1

// Grid maps (i, j) joint coordinates onto a flat row-major index with i
// varying fastest.
type Grid struct {
	I, J int
}

// NewGrid returns a grid of i columns and j rows.
func NewGrid(i, j int) Grid {
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	return Grid{I: i, J: j}
}

// Len reports the number of joints in the grid.
func (g Grid) Len() int { return g.I * g.J }

// Contains reports whether (i, j) addresses a real joint.
func (g Grid) Contains(i, j int) bool {
	return i >= 0 && i < g.I && j >= 0 && j < g.J
}

// Index returns the flat index for (i, j), or NoNeighbor when the
// coordinates fall outside the grid. Edges never wrap.
func (g Grid) Index(i, j int) int {
	if !g.Contains(i, j) {
		return NoNeighbor
	}
	return j*g.I + i
}

// Coords is the inverse of Index for ids in [0, Len()).
func (g Grid) Coords(id int) (int, int) {
	return id % g.I, id / g.I
}

// Size returns the grid shape as a Size.
func (g Grid) Size() Size { return Size{I: g.I, J: g.J} }
