//go:build ebiten

package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ClothPainter draws a Scene onto an ebiten image using a 1x1 white pixel
// stretched into lines and dots.
type ClothPainter struct {
	pixel *ebiten.Image
}

// NewClothPainter allocates the painter's pixel texture.
func NewClothPainter() *ClothPainter {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &ClothPainter{pixel: px}
}

// Draw paints edges back to front followed by joint markers.
func (cp *ClothPainter) Draw(dst *ebiten.Image, points []Point, edges []Edge) {
	dst.Fill(Background)
	for _, e := range edges {
		if e.A < 0 || e.B < 0 || e.A >= len(points) || e.B >= len(points) {
			continue
		}
		a, b := points[e.A], points[e.B]
		if !a.Visible || !b.Visible {
			continue
		}
		cp.DrawLine(dst, a.X, a.Y, b.X, b.Y, 1.5, lerpRGBA(a.Color, b.Color, 0.5))
	}
	for _, pt := range points {
		if !pt.Visible {
			continue
		}
		size := 3.0
		if pt.Locked {
			size = 7
		}
		cp.DrawPoint(dst, pt.X, pt.Y, size, pt.Color)
	}
}

// DrawPoint fills a size×size square centred on (x, y).
func (cp *ClothPainter) DrawPoint(dst *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(cp.pixel, op)
}

// DrawLine strokes a segment of the given thickness.
func (cp *ClothPainter) DrawLine(dst *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(cp.pixel, op)
}
