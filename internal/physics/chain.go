package physics

import "math"

// Starting layout of a fresh chain.
const (
	BodyCount   = 4
	TotalSpan   = 800.0 // Combined rope length of all bodies
	DefaultMass = 1.0
)

// PresetAngles are the starting angles of a fresh chain, top to bottom.
var PresetAngles = [BodyCount]float64{math.Pi / 4, math.Pi / 6, math.Pi / 8, math.Pi / 10}

// Chain is an ordered set of bodies. Body i hangs from body i-1's bob
// for as long as body i is not cut.
type Chain []*Body

// NewChain builds the starting chain with every body anchored at the origin.
func NewChain(originX, originY float64) Chain {
	length := TotalSpan / BodyCount
	c := make(Chain, 0, BodyCount)
	for _, angle := range PresetAngles {
		c = append(c, NewBody(length, angle, originX, originY, DefaultMass))
	}
	return c
}

// reanchor attaches body i to its predecessor's bob unless body i is cut.
func (c Chain) reanchor(i int) {
	if i == 0 || c[i].Cut {
		return
	}
	c[i].AnchorX = c[i-1].BobX
	c[i].AnchorY = c[i-1].BobY
}

// Step advances the whole chain by one tick. Each body is re-anchored right
// before it is integrated, so it follows the predecessor's bob as computed
// earlier in the same tick.
func (c Chain) Step(gravity float64) {
	for i, b := range c {
		c.reanchor(i)
		b.Update(gravity)
	}
}

// AnchorTo pins body 0 at the origin and every other body at its
// predecessor's current bob, cut or not. Bobs are left untouched.
func (c Chain) AnchorTo(originX, originY float64) {
	for i, b := range c {
		if i == 0 {
			b.AnchorX, b.AnchorY = originX, originY
			continue
		}
		b.AnchorX = c[i-1].BobX
		b.AnchorY = c[i-1].BobY
	}
}

// CutBelow cuts every body with index >= first. Cutting is one-way.
func (c Chain) CutBelow(first int) {
	for i := first; i < len(c); i++ {
		if i < 0 {
			continue
		}
		c[i].Cut = true
	}
}

// UncutMass is the load still hanging from the climber, climber included.
func (c Chain) UncutMass() float64 {
	total := 0.0
	for _, b := range c {
		if !b.Cut {
			total += b.Mass
		}
	}
	return total
}

// CutCount returns how many bodies are cut.
func (c Chain) CutCount() int {
	n := 0
	for _, b := range c {
		if b.Cut {
			n++
		}
	}
	return n
}

// Energy sums the energy of the bodies that are still swinging.
func (c Chain) Energy(gravity float64) float64 {
	total := 0.0
	for _, b := range c {
		total += b.Energy(gravity)
	}
	return total
}

// Validate returns a *BodyError wrapping ErrInvalidState for the first
// body holding a non-finite value.
func (c Chain) Validate() error {
	if len(c) == 0 {
		return ErrEmptyChain
	}
	for i, b := range c {
		if !b.Valid() {
			return &BodyError{Index: i, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

// Clone returns a deep copy that shares no bodies with c.
func (c Chain) Clone() Chain {
	out := make(Chain, len(c))
	for i, b := range c {
		cp := *b
		out[i] = &cp
	}
	return out
}
