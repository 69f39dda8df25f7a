package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"clothsim/internal/app"
	"clothsim/internal/cloth"
	"clothsim/internal/core"
	pkgcore "clothsim/pkg/core"

	"github.com/kr/pretty"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 600, "frames to simulate")
	dt := flag.Duration("dt", time.Second/60, "nominal frame duration")
	seed := flag.Int64("seed", 1, "seed for frame-time jitter")
	jitter := flag.Float64("jitter", 0, "relative frame-time jitter in [0, 1]")
	dump := flag.String("dump", "", "write final joint positions and velocities as CSV to this path")
	every := flag.Int("every", 0, "log stats every N ticks (0 disables)")
	verbose := flag.Bool("v", false, "print the resolved cloth configuration")
	flag.Parse()

	factory, err := cfg.Factory()
	if err != nil {
		log.Fatal(err)
	}
	params, err := cfg.Overrides()
	if err != nil {
		log.Fatal(err)
	}
	sim, err := factory(params)
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Scenario, err)
	}
	c, ok := sim.(*cloth.Cloth)
	if !ok {
		log.Fatalf("scenario %s is not a cloth", cfg.Scenario)
	}
	if *verbose {
		log.Printf("config %# v", pretty.Formatter(c.Config()))
		log.Printf("locked %# v", pretty.Formatter(c.LockedJoints()))
	}

	var fixed *core.FixedStep
	if cfg.Fixed {
		fixed = core.NewFixedStep(cfg.TPS)
	}
	frames := pkgcore.NewRNG(*seed).FrameTimes(*ticks, *dt, *jitter)

	start := time.Now()
	n := app.Drive(c, frames, cfg.MaxDelta, fixed, func(tick int, step float64) {
		if *every > 0 && tick%*every == 0 {
			s := c.Stats()
			log.Printf("tick=%d t=%.3fs dt=%.4f ke=%.3f vmax=%.3f sag=%.3f", tick, s.Elapsed, step, s.KineticEnergy, s.MaxSpeed, c.Sag())
		}
	})
	wall := time.Since(start)

	s := c.Stats()
	fmt.Printf("%s: %d ticks, simulated %.3fs in %s\n", c.Name(), n, s.Elapsed, wall.Round(time.Microsecond))
	fmt.Printf("finite=%v kinetic=%.4f maxSpeed=%.4f sag=%.4f\n", s.Finite, s.KineticEnergy, s.MaxSpeed, c.Sag())
	fmt.Printf("bounds min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f)\n", s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z)
	if *verbose {
		fmt.Println(c.Parameters())
	}

	if *dump != "" {
		if err := writeCSV(*dump, c); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *dump)
	}
	if !s.Finite {
		os.Exit(1)
	}
}

func writeCSV(path string, c *cloth.Cloth) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"i", "j", "locked", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
		f.Close()
		return err
	}
	pos, vel := c.Positions(), c.Velocities()
	for id := range pos {
		i, j := c.IJ(id)
		p, v := pos[id], vel[id]
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(j),
			strconv.FormatBool(c.IsJointLocked(i, j)),
			formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
			formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
