package cloth

import "clothsim/internal/core"

// Pinning locks a set of joints on a freshly built cloth.
type Pinning func(c *Cloth)

// PinCorners holds the two top corners.
func PinCorners(c *Cloth) {
	last := c.grid.I - 1
	c.LockJoint(0, 0)
	c.LockJoint(last, 0)
}

// PinThree holds both top corners and the middle of the top edge.
func PinThree(c *Cloth) {
	last := c.grid.I - 1
	c.LockJoint(0, 0)
	c.LockJoint(last/2, 0)
	c.LockJoint(last, 0)
}

// PinTopEdge holds every joint of the top row, like a curtain on a rail.
func PinTopEdge(c *Cloth) {
	for i := 0; i < c.grid.I; i++ {
		c.LockJoint(i, 0)
	}
}

// NewScenario builds a cloth from a config map and applies pin.
func NewScenario(name string, cfg map[string]string, pin Pinning) (*Cloth, error) {
	c, err := New(FromMap(cfg))
	if err != nil {
		return nil, err
	}
	if pin != nil {
		pin(c)
	}
	c.name = name
	return c, nil
}

func register(name string, pin Pinning) {
	core.Register(name, func(cfg map[string]string) (core.Sim, error) {
		c, err := NewScenario(name, cfg, pin)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

func init() {
	register("two-corners", PinCorners)
	register("three-pins", PinThree)
	register("curtain", PinTopEdge)
}
