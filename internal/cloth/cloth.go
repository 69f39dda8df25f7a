package cloth

import (
	"clothsim/internal/core"
	"clothsim/internal/vecmath"
)

// Joint addresses a point mass by column i and row j.
type Joint struct {
	I, J int
}

// Cloth is a rectangular mass-spring grid advanced with an RK4-style step.
//
// Positions and velocities are double buffered: every Update reads the
// current buffers only and writes the back buffers, which are swapped in when
// the tick completes. No joint ever sees another joint's value from the tick
// in progress.
type Cloth struct {
	cfg  Config
	name string
	grid core.Grid

	jointMass float64
	springK   float64
	gravity   vecmath.Vec3
	offsets   []SpringOffset

	pos, posNext []vecmath.Vec3
	vel, velNext []vecmath.Vec3

	locked     map[Joint]struct{}
	lockOrder  []Joint
	lockedByID []bool

	ticks   int
	elapsed float64
}

// New builds a cloth hanging from its top edge: row j=0 sits JSize above the
// origin's y and rows descend toward it, all at height JSize. Every joint
// starts at rest.
func New(cfg Config) (*Cloth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid := core.NewGrid(cfg.IDivisions, cfg.JDivisions)
	n := grid.Len()

	c := &Cloth{
		cfg:        cfg,
		name:       "cloth",
		grid:       grid,
		jointMass:  cfg.MassPerUnitArea * cfg.ISize * cfg.JSize / float64(n),
		springK:    cfg.SpringK,
		gravity:    vecmath.V3(0, 0, -cfg.Gravity),
		pos:        make([]vecmath.Vec3, n),
		posNext:    make([]vecmath.Vec3, n),
		vel:        make([]vecmath.Vec3, n),
		velNext:    make([]vecmath.Vec3, n),
		locked:     map[Joint]struct{}{},
		lockedByID: make([]bool, n),
	}

	di := cfg.ISize / float64(cfg.IDivisions-1)
	dj := cfg.JSize / float64(cfg.JDivisions-1)
	for j := 0; j < grid.J; j++ {
		for i := 0; i < grid.I; i++ {
			local := vecmath.V3(-0.5*cfg.ISize+float64(i)*di, cfg.JSize-float64(j)*dj, cfg.JSize)
			c.pos[grid.Index(i, j)] = cfg.Origin.Add(local)
		}
	}
	c.offsets = buildOffsets(di, dj)
	return c, nil
}

// Name returns the simulation identifier.
func (c *Cloth) Name() string { return c.name }

// Size returns the joint grid dimensions.
func (c *Cloth) Size() core.Size { return c.grid.Size() }

// Grid exposes the index mapping shared by positions and velocities.
func (c *Cloth) Grid() core.Grid { return c.grid }

// Config returns the parameters the cloth was built from.
func (c *Cloth) Config() Config { return c.cfg }

// Extents returns the cloth's width and height in world units.
func (c *Cloth) Extents() (float64, float64) { return c.cfg.ISize, c.cfg.JSize }

// JointMass returns the mass carried by every joint.
func (c *Cloth) JointMass() float64 { return c.jointMass }

// SpringK returns the stiffness shared by all springs.
func (c *Cloth) SpringK() float64 { return c.springK }

// Gravity returns the constant gravitational acceleration.
func (c *Cloth) Gravity() vecmath.Vec3 { return c.gravity }

// Offsets returns a copy of the spring templates.
func (c *Cloth) Offsets() []SpringOffset {
	return append([]SpringOffset(nil), c.offsets...)
}

// Positions exposes the current joint positions indexed by ID. The slice is
// owned by the cloth and is only valid until the next Update.
func (c *Cloth) Positions() []vecmath.Vec3 { return c.pos }

// Velocities exposes the current joint velocities indexed by ID, with the
// same lifetime as Positions.
func (c *Cloth) Velocities() []vecmath.Vec3 { return c.vel }

// Ticks reports how many updates have run.
func (c *Cloth) Ticks() int { return c.ticks }

// Elapsed reports the simulated time in seconds.
func (c *Cloth) Elapsed() float64 { return c.elapsed }

// ID returns the flat index of joint (i, j), or core.NoNeighbor outside the
// grid.
func (c *Cloth) ID(i, j int) int { return c.grid.Index(i, j) }

// IJ returns the grid coordinates of a flat index.
func (c *Cloth) IJ(id int) (int, int) { return c.grid.Coords(id) }

// LockJoint pins joint (i, j) in place for the lifetime of the cloth.
// Coordinates outside the grid are accepted and have no effect on the
// simulation. Locking an already locked joint is a no-op.
func (c *Cloth) LockJoint(i, j int) {
	key := Joint{I: i, J: j}
	if _, ok := c.locked[key]; ok {
		return
	}
	c.locked[key] = struct{}{}
	c.lockOrder = append(c.lockOrder, key)
	if id := c.grid.Index(i, j); id != core.NoNeighbor {
		c.lockedByID[id] = true
	}
}

// IsJointLocked reports whether LockJoint was called with (i, j).
func (c *Cloth) IsJointLocked(i, j int) bool {
	_, ok := c.locked[Joint{I: i, J: j}]
	return ok
}

// LockedJoints lists locked coordinates in the order they were first locked.
func (c *Cloth) LockedJoints() []Joint {
	return append([]Joint(nil), c.lockOrder...)
}

// DeltaVelocity returns the velocity change over dt for joint (i, j) if it
// were at candidate. Only the subject joint is displaced; neighbors are read
// from the current state.
func (c *Cloth) DeltaVelocity(i, j int, candidate vecmath.Vec3, dt float64) vecmath.Vec3 {
	var force vecmath.Vec3
	for _, o := range c.offsets {
		n := c.grid.Index(i+o.DI, j+o.DJ)
		if n == core.NoNeighbor {
			continue
		}
		toNeighbor := c.pos[n].Sub(candidate)
		distance := toNeighbor.Normalize()
		force = force.Add(toNeighbor.Scale(c.springK * (distance - o.Rest)))
	}
	acceleration := force.Scale(1 / c.jointMass).Add(c.gravity)
	return acceleration.Scale(dt)
}

// Update advances every unlocked joint by dt seconds. dt is used as given.
func (c *Cloth) Update(dt float64) {
	half := 0.5 * dt
	for id := range c.pos {
		p, v := c.pos[id], c.vel[id]
		if c.lockedByID[id] {
			c.posNext[id], c.velNext[id] = p, v
			continue
		}
		i, j := c.grid.Coords(id)
		k1 := v
		k2 := v.Add(c.DeltaVelocity(i, j, p.Add(k1.Scale(half)), half))
		k3 := v.Add(c.DeltaVelocity(i, j, p.Add(k2.Scale(half)), half))
		k4 := v.Add(c.DeltaVelocity(i, j, p.Add(k3.Scale(dt)), dt))
		v = k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(1.0 / 6.0)
		c.posNext[id] = p.Add(v.Scale(dt))
		c.velNext[id] = v
	}
	c.pos, c.posNext = c.posNext, c.pos
	c.vel, c.velNext = c.velNext, c.vel
	c.ticks++
	c.elapsed += dt
}

// Step implements core.Sim.
func (c *Cloth) Step(dt float64) { c.Update(dt) }
