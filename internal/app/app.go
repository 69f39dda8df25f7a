//go:build ebiten

package app

import (
	"fmt"
	"time"

	"clothsim/internal/core"
	"clothsim/internal/render"
	"clothsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orbitStep = 0.04
	zoomStep  = 1.05
)

// Game adapts a cloth simulation to the ebiten.Game interface.
type Game struct {
	factory core.Factory
	params  map[string]string

	sim     core.Sim
	scene   *render.Scene
	painter *render.ClothPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	clock *core.FrameClock
	fixed *core.FixedStep

	width    int
	height   int
	panel    int
	paused   bool
	tickOnce bool
	lastDT   float64
}

// New constructs a Game that builds its simulation from factory and params.
// cfg.Fixed selects constant 1/TPS ticks over measured frame time.
func New(factory core.Factory, params map[string]string, cfg *Config) (*Game, error) {
	g := &Game{
		factory: factory,
		params:  params,
		painter: render.NewClothPainter(),
		clock:   core.NewFrameClock(cfg.MaxDelta),
		width:   cfg.Width,
		height:  cfg.Height,
		panel:   cfg.Panel,
	}
	if cfg.Fixed {
		g.fixed = core.NewFixedStep(cfg.TPS)
	}
	g.overlay = ui.NewOverlay(g.painter)
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Sim returns the running simulation.
func (g *Game) Sim() core.Sim { return g.sim }

// Reset rebuilds the simulation from the factory, keeping the camera.
func (g *Game) Reset() error {
	sim, err := g.factory(g.params)
	if err != nil {
		return err
	}
	cam := render.DefaultCamera()
	if g.scene != nil {
		cam = g.scene.Camera
	}
	g.sim = sim
	g.scene = render.NewScene(sim.Size())
	g.scene.Camera = cam
	g.hud = ui.NewHUD(sim, g.panel)
	g.clock.Reset()
	g.tickOnce = false
	return nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(); err != nil {
			return err
		}
	}
	g.updateCamera()

	if g.overlay != nil {
		g.overlay.Update()
	}

	dt := g.clock.Tick(time.Now())
	switch {
	case g.tickOnce:
		step := 1.0 / float64(ebiten.TPS())
		if g.fixed != nil {
			step = g.fixed.Seconds()
		}
		g.sim.Step(step)
		g.lastDT = step
		g.tickOnce = false
	case g.paused:
	case g.fixed != nil:
		n := g.fixed.Advance(time.Duration(dt * float64(time.Second)))
		for i := 0; i < n; i++ {
			g.sim.Step(g.fixed.Seconds())
		}
		g.lastDT = g.fixed.Seconds()
	case dt > 0:
		g.sim.Step(dt)
		g.lastDT = dt
	}

	if g.hud != nil {
		g.hud.Update(g.status())
	}
	return nil
}

func (g *Game) updateCamera() {
	cam := &g.scene.Camera
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		cam.Orbit(-orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		cam.Orbit(orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		cam.Orbit(0, orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		cam.Orbit(0, -orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		cam.Zoom(1 / zoomStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		cam.Zoom(zoomStep)
	}
}

func (g *Game) status() string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	mode := "frame"
	if g.fixed != nil {
		mode = "fixed"
	}
	return fmt.Sprintf("%s  dt=%.4fs (%s)  %.0f fps", state, g.lastDT, mode, ebiten.ActualFPS())
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	proj := g.scene.Camera.Projector(g.width, g.height)
	points := g.scene.Build(g.sim, proj)
	g.painter.Draw(screen, points, g.scene.Edges())
	if g.overlay != nil {
		g.overlay.Draw(screen, g.sim, g.scene, points, proj)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.width, g.height)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.hud.Width(), g.height
}
