package core

import (
	"sort"

	"clothsim/internal/vecmath"
)

// Size describes the joint grid of a simulation.
type Size struct {
	I int
	J int
}

// Sim defines the minimal contract a host needs to drive and draw a
// simulation: advance it once per frame and read positions back.
type Sim interface {
	Name() string
	Size() Size
	Step(dt float64)
	Positions() []vecmath.Vec3
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var scenarios = map[string]Factory{}

// Register adds a scenario factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenarios[name] = f
}

// Scenarios exposes the registry of available scenario factories.
func Scenarios() map[string]Factory {
	return scenarios
}

// ScenarioNames lists registered scenarios in lexical order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
