//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"clothsim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 10
	hudLineHeight = 16
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string
	status     string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: buildTitle(sim)}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot from the simulation.
func (h *HUD) Update(status string) {
	if h == nil {
		return
	}
	h.status = status
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := hudPadding + hudLineHeight
	text.Draw(h.panel, h.title, face, hudPadding, y, color.RGBA{R: 250, G: 220, B: 80, A: 255})
	y += hudLineHeight
	if h.status != "" {
		text.Draw(h.panel, h.status, face, hudPadding, y, color.RGBA{R: 160, G: 200, B: 240, A: 255})
		y += hudLineHeight
	}
	y += hudLineHeight / 2
	for _, line := range h.snapshot.Lines() {
		col := color.RGBA{R: 220, G: 220, B: 220, A: 255}
		if !strings.HasPrefix(line, " ") {
			col = color.RGBA{R: 140, G: 140, B: 150, A: 255}
		}
		text.Draw(h.panel, line, face, hudPadding, y, col)
		y += hudLineHeight
		if y > height-hudPadding {
			break
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil {
		return "Cloth"
	}
	name := sim.Name()
	if name == "" {
		return "Cloth"
	}
	return fmt.Sprintf("Cloth: %s", name)
}
