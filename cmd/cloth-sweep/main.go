package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"clothsim/internal/cloth"
)

type paramSet struct {
	springK float64
	dt      float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("k=%.0f dt=%.4f", p.springK, p.dt)
}

type sweepResult struct {
	params     paramSet
	finite     bool
	ticks      int
	maxSpeed   float64
	peakSpeed  float64
	sag        float64
	kinetic    float64
	divergedAt int
}

func main() {
	duration := flag.Float64("seconds", 5, "simulated seconds per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	ks := flag.String("k", "100,400,800,1600,3200", "comma-separated spring constants")
	dts := flag.String("dt", "0.004,0.008,0.0167,0.033,0.05", "comma-separated step sizes in seconds")
	divisions := flag.Int("divisions", 11, "joints per side")
	flag.Parse()

	springKs, err := parseList(*ks)
	if err != nil {
		log.Fatalf("-k: %v", err)
	}
	steps, err := parseList(*dts)
	if err != nil {
		log.Fatalf("-dt: %v", err)
	}

	base := cloth.DefaultConfig()
	base.IDivisions = *divisions
	base.JDivisions = *divisions
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	var sets []paramSet
	for _, k := range springKs {
		for _, dt := range steps {
			sets = append(sets, paramSet{springK: k, dt: dt})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %.1fs each)\n", len(sets), *workers, *duration)

	jobs := make(chan paramSet)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *duration)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for res := range results {
		all = append(all, res)
		if !res.finite {
			fmt.Printf("Diverged at tick %d with %s\n", res.divergedAt, res.params)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].params.springK != all[j].params.springK {
			return all[i].params.springK < all[j].params.springK
		}
		return all[i].params.dt < all[j].params.dt
	})
	elapsed := time.Since(start)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, res := range all {
		state := "ok"
		if !res.finite {
			state = "DIVERGED"
		}
		fmt.Printf("%-22s %-8s ticks=%d peakSpeed=%.3f finalSpeed=%.3f sag=%.3f kinetic=%.3f\n",
			res.params, state, res.ticks, res.peakSpeed, res.maxSpeed, res.sag, res.kinetic)
	}

	stable := 0
	for _, res := range all {
		if res.finite {
			stable++
		}
	}
	fmt.Printf("\n%d/%d parameter sets stayed finite\n", stable, len(all))
}

func runScenario(base cloth.Config, params paramSet, seconds float64) sweepResult {
	cfg := base
	cfg.SpringK = params.springK
	res := sweepResult{params: params, finite: true}

	c, err := cloth.New(cfg)
	if err != nil {
		res.finite = false
		return res
	}
	cloth.PinCorners(c)

	steps := int(seconds / params.dt)
	for step := 0; step < steps; step++ {
		c.Update(params.dt)
		s := c.Stats()
		if !s.Finite {
			res.finite = false
			res.divergedAt = step + 1
			break
		}
		if s.MaxSpeed > res.peakSpeed {
			res.peakSpeed = s.MaxSpeed
		}
	}

	s := c.Stats()
	res.ticks = s.Ticks
	if res.finite {
		res.maxSpeed = s.MaxSpeed
		res.sag = c.Sag()
		res.kinetic = s.KineticEnergy
	}
	return res
}

func parseList(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("%s must be positive", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
