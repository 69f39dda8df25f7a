package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// CellScreen is the part of tcell.Screen the terminal painter draws into.
type CellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// TermAspect compensates for terminal cells being roughly twice as tall as
// they are wide.
const TermAspect = 0.5

const (
	runeEdge   = '·'
	runeJoint  = 'o'
	runeLocked = '@'
)

// TermPainter draws a Scene as a wireframe of terminal cells.
type TermPainter struct {
	depth []float64
	w, h  int
}

// Paint rasterizes edges first and joints on top, keeping the nearest
// sample per cell.
func (p *TermPainter) Paint(s CellScreen, points []Point, edges []Edge) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if p.w != w || p.h != h || len(p.depth) != w*h {
		p.w, p.h = w, h
		p.depth = make([]float64, w*h)
	}
	for i := range p.depth {
		p.depth[i] = math.Inf(1)
	}

	for _, e := range edges {
		if e.A < 0 || e.B < 0 || e.A >= len(points) || e.B >= len(points) {
			continue
		}
		a, b := points[e.A], points[e.B]
		if !a.Visible || !b.Visible {
			continue
		}
		steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
		if steps < 1 {
			steps = 1
		}
		col := lerpRGBA(a.Color, b.Color, 0.5)
		for k := 1; k < steps; k++ {
			t := float64(k) / float64(steps)
			x := a.X + (b.X-a.X)*t
			y := a.Y + (b.Y-a.Y)*t
			d := a.Depth + (b.Depth-a.Depth)*t
			p.plot(s, x, y, d, runeEdge, col)
		}
	}
	for _, pt := range points {
		if !pt.Visible {
			continue
		}
		r := runeJoint
		if pt.Locked {
			r = runeLocked
		}
		// Joints always win over edge samples in their own cell.
		p.plot(s, pt.X, pt.Y, pt.Depth-1e-3, r, pt.Color)
	}
}

func (p *TermPainter) plot(s CellScreen, x, y, depth float64, r rune, col color.RGBA) {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if cx < 0 || cy < 0 || cx >= p.w || cy >= p.h {
		return
	}
	idx := cy*p.w + cx
	if depth >= p.depth[idx] {
		return
	}
	p.depth[idx] = depth
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
	s.SetContent(cx, cy, r, nil, style)
}
