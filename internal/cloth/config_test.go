package cloth

import (
	"errors"
	"testing"

	"clothsim/internal/core"
	"clothsim/internal/vecmath"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{
		"i_size":             "4",
		"j_size":             "2.5",
		"i_divisions":        "21",
		"j_divisions":        "9",
		"spring_k":           "1200",
		"mass_per_unit_area": "3",
		"gravity":            "9.81",
		"origin_x":           "1",
		"origin_y":           "-20",
		"origin_z":           "0.5",
	})
	want := Config{
		Origin:          vecmath.V3(1, -20, 0.5),
		ISize:           4,
		JSize:           2.5,
		IDivisions:      21,
		JDivisions:      9,
		SpringK:         1200,
		MassPerUnitArea: 3,
		Gravity:         9.81,
	}
	if cfg != want {
		t.Fatalf("FromMap = %+v, want %+v", cfg, want)
	}
}

func TestFromMapIgnoresUnparsableValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"i_divisions": "eleven",
		"spring_k":    "",
		"unknown":     "1",
	})
	if cfg != DefaultConfig() {
		t.Fatalf("FromMap = %+v, want defaults", cfg)
	}
	if FromMap(nil) != DefaultConfig() {
		t.Fatal("nil map must yield defaults")
	}
}

func TestFromMapDefersRangeChecksToNew(t *testing.T) {
	cfg := FromMap(map[string]string{"j_divisions": "1"})
	if cfg.JDivisions != 1 {
		t.Fatalf("JDivisions = %d, want raw value 1", cfg.JDivisions)
	}
	if _, err := New(cfg); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("New err = %v, want ErrInvalidGrid", err)
	}
}

func TestScenariosRegistered(t *testing.T) {
	cases := []struct {
		name string
		want []Joint
	}{
		{"two-corners", []Joint{{0, 0}, {10, 0}}},
		{"three-pins", []Joint{{0, 0}, {5, 0}, {10, 0}}},
		{"curtain", []Joint{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0}}},
	}
	for _, tc := range cases {
		factory, ok := core.Scenarios()[tc.name]
		if !ok {
			t.Fatalf("scenario %q not registered", tc.name)
		}
		sim, err := factory(nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if sim.Name() != tc.name {
			t.Fatalf("Name = %q, want %q", sim.Name(), tc.name)
		}
		c, ok := sim.(*Cloth)
		if !ok {
			t.Fatalf("%s: factory returned %T", tc.name, sim)
		}
		got := c.LockedJoints()
		if len(got) != len(tc.want) {
			t.Fatalf("%s: locked %v, want %v", tc.name, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: locked %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestScenarioFactoryReportsConfigErrors(t *testing.T) {
	factory := core.Scenarios()["curtain"]
	sim, err := factory(map[string]string{"mass_per_unit_area": "0"})
	if !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("err = %v, want ErrInvalidMass", err)
	}
	if sim != nil {
		t.Fatalf("sim = %v, want nil interface", sim)
	}
}

func TestScenarioHonoursGridOverrides(t *testing.T) {
	sim, err := core.Scenarios()["three-pins"](map[string]string{"i_divisions": "7", "j_divisions": "4"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size() != (core.Size{I: 7, J: 4}) {
		t.Fatalf("Size = %+v", sim.Size())
	}
	c := sim.(*Cloth)
	if !c.IsJointLocked(3, 0) || !c.IsJointLocked(6, 0) {
		t.Fatalf("three-pins on 7 columns locked %v", c.LockedJoints())
	}
}
