//go:build ebiten

package ui

import (
	"image/color"

	"clothsim/internal/core"
	"clothsim/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const normalWhiskerLength = 0.6

// Overlay draws optional debugging visuals on top of the cloth.
type Overlay struct {
	painter     *render.ClothPainter
	showNormals bool
	showLocks   bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(painter *render.ClothPainter) *Overlay {
	return &Overlay{painter: painter, showLocks: true}
}

// Update toggles overlay layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showLocks = !o.showLocks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showNormals = !o.showNormals
	}
}

// Draw renders the enabled layers for the points produced by scene.
func (o *Overlay) Draw(screen *ebiten.Image, sim core.Sim, scene *render.Scene, points []render.Point, proj render.Projector) {
	if o == nil || o.painter == nil || len(points) == 0 {
		return
	}
	if o.showNormals {
		o.drawNormals(screen, sim, scene, points, proj)
	}
	if o.showLocks {
		for _, pt := range points {
			if pt.Locked && pt.Visible {
				o.painter.DrawPoint(screen, pt.X, pt.Y, 11, color.RGBA{R: 255, G: 255, B: 255, A: 90})
			}
		}
	}
}

func (o *Overlay) drawNormals(screen *ebiten.Image, sim core.Sim, scene *render.Scene, points []render.Point, proj render.Projector) {
	pos := sim.Positions()
	normals := scene.Normals()
	if len(pos) != len(points) || len(normals) != len(points) {
		return
	}
	tint := color.RGBA{R: 90, G: 200, B: 255, A: 200}
	for id, pt := range points {
		if !pt.Visible {
			continue
		}
		tip := pos[id].Add(normals[id].Scale(normalWhiskerLength))
		x, y, _, ok := proj.Project(tip)
		if !ok {
			continue
		}
		o.painter.DrawLine(screen, pt.X, pt.Y, x, y, 1, tint)
	}
}
