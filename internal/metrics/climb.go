package metrics

import (
	"math"

	"github.com/san-kum/ropeclimb/internal/game"
)

// ClimbHeight is how far the climber rose above its lowest observed point.
// Screen y grows downwards.
type ClimbHeight struct {
	name    string
	lowest  float64
	highest float64
	samples int
}

func NewClimbHeight() *ClimbHeight {
	return &ClimbHeight{name: "climb_height"}
}

func (c *ClimbHeight) Name() string { return c.name }

func (c *ClimbHeight) Observe(f game.Frame) {
	climber, ok := f.Climber()
	if !ok {
		return
	}
	if c.samples == 0 {
		c.lowest, c.highest = climber.BobY, climber.BobY
	}
	c.lowest = math.Max(c.lowest, climber.BobY)
	c.highest = math.Min(c.highest, climber.BobY)
	c.samples++
}

func (c *ClimbHeight) Value() float64 { return c.lowest - c.highest }

func (c *ClimbHeight) Reset() {
	c.lowest, c.highest = 0, 0
	c.samples = 0
}

// CutTick is the first tick on which any body was observed cut, or -1.
type CutTick struct {
	name string
	tick int
}

func NewCutTick() *CutTick {
	return &CutTick{name: "cut_tick", tick: -1}
}

func (c *CutTick) Name() string { return c.name }

func (c *CutTick) Observe(f game.Frame) {
	if c.tick < 0 && f.CutCount > 0 {
		c.tick = f.Tick
	}
}

func (c *CutTick) Value() float64 { return float64(c.tick) }
func (c *CutTick) Reset()         { c.tick = -1 }

// ClimbTime is the share of observed ticks spent with the climb held.
type ClimbTime struct {
	name     string
	climbing int
	samples  int
}

func NewClimbTime() *ClimbTime {
	return &ClimbTime{name: "climb_time"}
}

func (c *ClimbTime) Name() string { return c.name }

func (c *ClimbTime) Observe(f game.Frame) {
	if f.Status == game.StatusClimbing {
		c.climbing++
	}
	c.samples++
}

func (c *ClimbTime) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.climbing) / float64(c.samples)
}

func (c *ClimbTime) Reset() {
	c.climbing = 0
	c.samples = 0
}
