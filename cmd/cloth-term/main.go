package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"clothsim/internal/app"
	_ "clothsim/internal/cloth"
	"clothsim/internal/core"
	"clothsim/internal/render"

	"github.com/gdamore/tcell/v2"
)

const (
	orbitStep = 0.08
	zoomStep  = 1.1
)

type viewer struct {
	screen  tcell.Screen
	cfg     *app.Config
	factory core.Factory
	params  map[string]string

	sim     core.Sim
	scene   *render.Scene
	painter render.TermPainter
	clock   *core.FrameClock
	fixed   *core.FixedStep

	paused   bool
	tickOnce bool
	lastDT   float64
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, err := cfg.Factory()
	if err != nil {
		log.Fatal(err)
	}
	params, err := cfg.Overrides()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	v := &viewer{
		screen:  screen,
		cfg:     cfg,
		factory: factory,
		params:  params,
		clock:   core.NewFrameClock(cfg.MaxDelta),
	}
	if cfg.Fixed {
		v.fixed = core.NewFixedStep(cfg.TPS)
	}
	if err := v.reset(); err != nil {
		screen.Fini()
		log.Fatalf("build %s: %v", cfg.Scenario, err)
	}

	err = v.run()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) reset() error {
	sim, err := v.factory(v.params)
	if err != nil {
		return err
	}
	cam := render.DefaultCamera()
	if v.scene != nil {
		cam = v.scene.Camera
	}
	v.sim = sim
	v.scene = render.NewScene(sim.Size())
	v.scene.Camera = cam
	v.clock.Reset()
	return nil
}

func (v *viewer) run() error {
	tps := v.cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := v.handle(ev)
			if err != nil || quit {
				return err
			}
		case now := <-ticker.C:
			v.advance(now)
			v.draw()
		}
	}
}

func (v *viewer) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		cam := &v.scene.Camera
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			cam.Orbit(-orbitStep, 0)
		case tcell.KeyRight:
			cam.Orbit(orbitStep, 0)
		case tcell.KeyUp:
			cam.Orbit(0, orbitStep)
		case tcell.KeyDown:
			cam.Orbit(0, -orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case ' ':
				v.paused = !v.paused
			case 'n':
				v.tickOnce = true
			case 'r':
				if err := v.reset(); err != nil {
					return true, err
				}
			case '+', '=':
				cam.Zoom(1 / zoomStep)
			case '-':
				cam.Zoom(zoomStep)
			}
		}
	}
	return false, nil
}

func (v *viewer) advance(now time.Time) {
	dt := v.clock.Tick(now)
	switch {
	case v.tickOnce:
		step := 1.0 / float64(v.cfg.TPS)
		if v.fixed != nil {
			step = v.fixed.Seconds()
		}
		v.sim.Step(step)
		v.lastDT = step
		v.tickOnce = false
	case v.paused:
	case v.fixed != nil:
		n := v.fixed.Advance(time.Duration(dt * float64(time.Second)))
		for i := 0; i < n; i++ {
			v.sim.Step(v.fixed.Seconds())
		}
		v.lastDT = v.fixed.Seconds()
	case dt > 0:
		v.sim.Step(dt)
		v.lastDT = dt
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	proj := v.scene.Camera.Projector(w, h)
	proj.Aspect = render.TermAspect
	points := v.scene.Build(v.sim, proj)
	v.painter.Paint(v.screen, points, v.scene.Edges())

	state := "running"
	if v.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s  %s  dt=%.4fs  q quit  space pause  n step  r reset  arrows orbit  +/- zoom",
		v.sim.Name(), state, v.lastDT)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 200, 240))
	for x, r := range []rune(status) {
		if x >= w {
			break
		}
		v.screen.SetContent(x, 0, r, nil, style)
	}
	v.screen.Show()
}
