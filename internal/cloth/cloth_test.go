package cloth

import (
	"errors"
	"math"
	"slices"
	"testing"

	"clothsim/internal/core"
	"clothsim/internal/vecmath"
)

func mustNew(t *testing.T, cfg Config) *Cloth {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"one column", func(c *Config) { c.IDivisions = 1 }, ErrInvalidGrid},
		{"zero rows", func(c *Config) { c.JDivisions = 0 }, ErrInvalidGrid},
		{"zero width", func(c *Config) { c.ISize = 0 }, ErrInvalidExtent},
		{"negative height", func(c *Config) { c.JSize = -1 }, ErrInvalidExtent},
		{"zero mass", func(c *Config) { c.MassPerUnitArea = 0 }, ErrInvalidMass},
		{"negative mass", func(c *Config) { c.MassPerUnitArea = -3 }, ErrInvalidMass},
		{"NaN mass", func(c *Config) { c.MassPerUnitArea = math.NaN() }, ErrInvalidMass},
		{"negative stiffness", func(c *Config) { c.SpringK = -1 }, ErrInvalidStiffness},
		{"infinite stiffness", func(c *Config) { c.SpringK = math.Inf(1) }, ErrInvalidStiffness},
		{"negative gravity", func(c *Config) { c.Gravity = -9.8 }, ErrInvalidGravity},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		c, err := New(cfg)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
		if c != nil {
			t.Fatalf("%s: New returned a cloth alongside an error", tc.name)
		}
	}

	cfg := DefaultConfig()
	cfg.SpringK = 0
	cfg.Gravity = 0
	if _, err := New(cfg); err != nil {
		t.Fatalf("zero stiffness and gravity must be accepted: %v", err)
	}
}

func TestInitialLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Origin = vecmath.V3(0, -40, 0)
	c := mustNew(t, cfg)

	if got := len(c.Positions()); got != 121 {
		t.Fatalf("point count = %d, want 121", got)
	}
	if want := 15.0 * 10 * 10 / 121; c.JointMass() != want {
		t.Fatalf("joint mass = %v, want %v", c.JointMass(), want)
	}
	if c.Gravity() != vecmath.V3(0, 0, -10) {
		t.Fatalf("gravity = %v", c.Gravity())
	}

	checks := []struct {
		i, j int
		want vecmath.Vec3
	}{
		{0, 0, vecmath.V3(-5, -30, 10)},
		{10, 0, vecmath.V3(5, -30, 10)},
		{0, 10, vecmath.V3(-5, -40, 10)},
		{5, 3, vecmath.V3(0, -33, 10)},
	}
	for _, ck := range checks {
		if got := c.Positions()[c.ID(ck.i, ck.j)]; got != ck.want {
			t.Fatalf("position(%d,%d) = %v, want %v", ck.i, ck.j, got, ck.want)
		}
	}
	for id, v := range c.Velocities() {
		if v != (vecmath.Vec3{}) {
			t.Fatalf("velocity %d = %v, want zero", id, v)
		}
	}
	if len(c.LockedJoints()) != 0 {
		t.Fatal("new cloth must have no locked joints")
	}
}

func TestOffsetTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ISize = 6
	cfg.IDivisions = 4
	cfg.JSize = 8
	cfg.JDivisions = 5
	c := mustNew(t, cfg)

	offsets := c.Offsets()
	if len(offsets) != 12 {
		t.Fatalf("offset count = %d, want 12", len(offsets))
	}
	counts := map[SpringKind]int{}
	for _, o := range offsets {
		counts[o.Kind]++
		var want float64
		switch o.Kind {
		case Structural, Fold:
			want = math.Abs(float64(o.DI))*2 + math.Abs(float64(o.DJ))*2
		case Shear:
			want = math.Sqrt(2*2 + 2*2)
		}
		if math.Abs(o.Rest-want) > 1e-12 {
			t.Fatalf("%s offset (%d,%d) rest = %v, want %v", o.Kind, o.DI, o.DJ, o.Rest, want)
		}
	}
	for _, kind := range []SpringKind{Structural, Fold, Shear} {
		if counts[kind] != 4 {
			t.Fatalf("%s springs = %d, want 4", kind, counts[kind])
		}
	}

	offsets[0].Rest = 99
	if c.Offsets()[0].Rest == 99 {
		t.Fatal("Offsets must return a copy")
	}
}

func TestGridIndexingRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IDivisions = 6
	cfg.JDivisions = 3
	c := mustNew(t, cfg)
	for id := range c.Positions() {
		i, j := c.IJ(id)
		if c.ID(i, j) != id {
			t.Fatalf("ID(IJ(%d)) = %d", id, c.ID(i, j))
		}
	}
	for _, p := range [][2]int{{-1, 0}, {6, 0}, {0, -1}, {0, 3}, {-2, 7}} {
		if got := c.ID(p[0], p[1]); got != core.NoNeighbor {
			t.Fatalf("ID(%d,%d) = %d, want NoNeighbor", p[0], p[1], got)
		}
	}
}

func TestLockJointSemantics(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	c.LockJoint(3, 0)
	c.LockJoint(3, 0)
	c.LockJoint(-1, 50)
	c.LockJoint(0, 0)

	if !c.IsJointLocked(3, 0) || !c.IsJointLocked(0, 0) {
		t.Fatal("locked joints not reported")
	}
	if !c.IsJointLocked(-1, 50) {
		t.Fatal("out-of-range lock must still be recorded")
	}
	if c.IsJointLocked(1, 0) {
		t.Fatal("unlocked joint reported as locked")
	}
	want := []Joint{{3, 0}, {-1, 50}, {0, 0}}
	if got := c.LockedJoints(); !slices.Equal(got, want) {
		t.Fatalf("LockedJoints = %v, want %v", got, want)
	}
}

func TestLockedJointsNeverMove(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	c.LockJoint(0, 0)
	c.LockJoint(10, 0)
	c.LockJoint(-1, 4)

	corner := c.ID(0, 0)
	other := c.ID(10, 0)
	freeID := c.ID(5, 5)
	p0, v0 := c.Positions()[corner], c.Velocities()[corner]
	p1, v1 := c.Positions()[other], c.Velocities()[other]
	start := c.Positions()[freeID]

	for tick := 0; tick < 300; tick++ {
		c.Update(0.01)
		if c.Positions()[corner] != p0 || c.Velocities()[corner] != v0 {
			t.Fatalf("tick %d: locked joint (0,0) moved to %v", tick, c.Positions()[corner])
		}
		if c.Positions()[other] != p1 || c.Velocities()[other] != v1 {
			t.Fatalf("tick %d: locked joint (10,0) moved to %v", tick, c.Positions()[other])
		}
	}
	if c.Positions()[freeID] == start {
		t.Fatal("free joint did not move under gravity")
	}
	if !c.Stats().Finite {
		t.Fatal("simulation diverged")
	}
}

func TestRelaxedInteriorJointFeelsNoForce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ISize = 4
	cfg.JSize = 4
	cfg.IDivisions = 5
	cfg.JDivisions = 5
	cfg.Gravity = 0
	c := mustNew(t, cfg)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			if i != 2 || j != 2 {
				c.LockJoint(i, j)
			}
		}
	}

	center := c.Positions()[c.ID(2, 2)]
	if dv := c.DeltaVelocity(2, 2, center, 0.016); dv != (vecmath.Vec3{}) {
		t.Fatalf("delta velocity at rest = %v, want zero", dv)
	}

	c.Update(0.016)
	if got := c.Positions()[c.ID(2, 2)]; got != center {
		t.Fatalf("relaxed joint drifted to %v", got)
	}
}

func TestDeltaVelocityPullsTowardStretchedNeighbor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ISize = 1
	cfg.JSize = 1
	cfg.IDivisions = 2
	cfg.JDivisions = 2
	cfg.Gravity = 0
	c := mustNew(t, cfg)

	p := c.Positions()[c.ID(1, 1)]
	stretched := p.Add(vecmath.V3(0.25, 0, 0))
	if dv := c.DeltaVelocity(1, 1, stretched, 0.01); dv.X >= 0 {
		t.Fatalf("stretched spring should pull back toward -x, got %v", dv)
	}
	compressed := p.Add(vecmath.V3(-0.25, 0, 0))
	if dv := c.DeltaVelocity(1, 1, compressed, 0.01); dv.X <= 0 {
		t.Fatalf("compressed spring should push toward +x, got %v", dv)
	}
}

func TestSingleSpringOscillatesWithoutDiverging(t *testing.T) {
	cfg := Config{
		ISize:           1,
		JSize:           1,
		IDivisions:      2,
		JDivisions:      2,
		SpringK:         10,
		MassPerUnitArea: 4,
	}
	c := mustNew(t, cfg)
	if c.JointMass() != 1 {
		t.Fatalf("joint mass = %v, want 1", c.JointMass())
	}
	c.LockJoint(0, 0)
	c.LockJoint(1, 0)
	c.LockJoint(0, 1)

	free := c.ID(1, 1)
	rest := c.Positions()[free]
	c.pos[free] = rest.Add(vecmath.V3(0.5, 0, 0))

	const dt = 0.001
	reversals := 0
	lastSign := 0
	for tick := 0; tick < 20000; tick++ {
		c.Update(dt)
		p := c.Positions()[free]
		v := c.Velocities()[free]
		if !p.IsFinite() || !v.IsFinite() {
			t.Fatalf("tick %d: non-finite state p=%v v=%v", tick, p, v)
		}
		if d := p.Sub(rest); math.Sqrt(d.Dot(d)) > 1.5 {
			t.Fatalf("tick %d: displacement %v exceeds bound", tick, d)
		}
		sign := 0
		if v.X > 0 {
			sign = 1
		} else if v.X < 0 {
			sign = -1
		}
		if sign != 0 && lastSign != 0 && sign != lastSign {
			reversals++
		}
		if sign != 0 {
			lastSign = sign
		}
	}
	if reversals < 6 {
		t.Fatalf("velocity reversed %d times, expected sustained oscillation", reversals)
	}
}

func TestGravityOnlyMotion(t *testing.T) {
	const (
		g     = 10.0
		dt    = 0.01
		ticks = 100
	)
	cfg := Config{
		ISize:           1,
		JSize:           1,
		IDivisions:      2,
		JDivisions:      2,
		SpringK:         0,
		MassPerUnitArea: 1,
		Gravity:         g,
	}
	c := mustNew(t, cfg)
	start := append([]vecmath.Vec3(nil), c.Positions()...)

	for tick := 0; tick < ticks; tick++ {
		c.Update(dt)
	}

	// The stored velocity is the weighted mean of the four stage velocities,
	// so each tick adds g*dt/2 and positions follow the matching sum.
	wantV := -g * dt * ticks / 2
	wantDrop := -g * dt * dt * ticks * (ticks + 1) / 4
	for id, v := range c.Velocities() {
		if v.X != 0 || v.Y != 0 {
			t.Fatalf("joint %d gained horizontal velocity %v", id, v)
		}
		if math.Abs(v.Z-wantV) > 1e-9 {
			t.Fatalf("joint %d velocity %v, want %v", id, v.Z, wantV)
		}
		d := c.Positions()[id].Sub(start[id])
		if d.X != 0 || d.Y != 0 {
			t.Fatalf("joint %d drifted horizontally by %v", id, d)
		}
		if math.Abs(d.Z-wantDrop) > 1e-9 {
			t.Fatalf("joint %d dropped %v, want %v", id, d.Z, wantDrop)
		}
	}
	if math.Abs(c.Elapsed()-dt*ticks) > 1e-12 || c.Ticks() != ticks {
		t.Fatalf("elapsed %v over %d ticks", c.Elapsed(), c.Ticks())
	}
}

func TestDeterministicReplay(t *testing.T) {
	dts := []float64{0.016, 0.017, 0.0165, 0.05, 0.001, 0.02, 0.016, 0.033}
	run := func() ([][]vecmath.Vec3, [][]vecmath.Vec3) {
		c := mustNew(t, DefaultConfig())
		PinThree(c)
		var ps, vs [][]vecmath.Vec3
		for round := 0; round < 10; round++ {
			for _, dt := range dts {
				c.Update(dt)
				ps = append(ps, append([]vecmath.Vec3(nil), c.Positions()...))
				vs = append(vs, append([]vecmath.Vec3(nil), c.Velocities()...))
			}
		}
		return ps, vs
	}
	p1, v1 := run()
	p2, v2 := run()
	for tick := range p1 {
		if !slices.Equal(p1[tick], p2[tick]) {
			t.Fatalf("tick %d: positions differ between runs", tick)
		}
		if !slices.Equal(v1[tick], v2[tick]) {
			t.Fatalf("tick %d: velocities differ between runs", tick)
		}
	}
}

// referenceStep integrates one joint against the cloth's current state.
func referenceStep(c *Cloth, id int, dt float64) (vecmath.Vec3, vecmath.Vec3) {
	i, j := c.IJ(id)
	p, v := c.Positions()[id], c.Velocities()[id]
	if c.IsJointLocked(i, j) {
		return p, v
	}
	half := 0.5 * dt
	k1 := v
	k2 := v.Add(c.DeltaVelocity(i, j, p.Add(k1.Scale(half)), half))
	k3 := v.Add(c.DeltaVelocity(i, j, p.Add(k2.Scale(half)), half))
	k4 := v.Add(c.DeltaVelocity(i, j, p.Add(k3.Scale(dt)), dt))
	v = k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(1.0 / 6.0)
	return p.Add(v.Scale(dt)), v
}

func TestUpdateReadsPreTickSnapshot(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	PinTopEdge(c)
	for tick := 0; tick < 20; tick++ {
		c.Update(0.016)
	}

	n := len(c.Positions())
	wantP := make([]vecmath.Vec3, n)
	wantV := make([]vecmath.Vec3, n)
	// Walk backwards so any dependence on iteration order would show up.
	for id := n - 1; id >= 0; id-- {
		wantP[id], wantV[id] = referenceStep(c, id, 0.016)
	}

	c.Update(0.016)
	if !slices.Equal(c.Positions(), wantP) {
		t.Fatal("positions depend on update order")
	}
	if !slices.Equal(c.Velocities(), wantV) {
		t.Fatal("velocities depend on update order")
	}
}

func TestStatsAndSag(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	s := c.Stats()
	if s.KineticEnergy != 0 || s.MaxSpeed != 0 || !s.Finite {
		t.Fatalf("resting stats = %+v", s)
	}
	if s.Min != vecmath.V3(-5, 0, 10) || s.Max != vecmath.V3(5, 10, 10) {
		t.Fatalf("bounds = %v..%v", s.Min, s.Max)
	}
	if c.Sag() != 0 {
		t.Fatalf("initial sag = %v", c.Sag())
	}

	PinTopEdge(c)
	for tick := 0; tick < 50; tick++ {
		c.Update(0.016)
	}
	if c.Sag() <= 0 {
		t.Fatalf("hanging cloth should sag, got %v", c.Sag())
	}
	if c.Stats().KineticEnergy <= 0 {
		t.Fatal("falling cloth should carry kinetic energy")
	}
}

func TestParametersSnapshot(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	PinCorners(c)
	c.Update(0.016)

	values := map[string]string{}
	for _, g := range c.Parameters().Groups {
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	want := map[string]string{
		"i_divisions": "11",
		"spring_k":    "800",
		"gravity":     "10",
		"ticks":       "1",
		"locked":      "(0,0) (10,0)",
	}
	for k, v := range want {
		if values[k] != v {
			t.Fatalf("parameter %s = %q, want %q", k, values[k], v)
		}
	}
}
