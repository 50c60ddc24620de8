package game

import "github.com/san-kum/ropeclimb/internal/physics"

// Frame is an immutable picture of a game, safe to hand to another goroutine.
type Frame struct {
	Bodies   []physics.Body
	Status   Status
	Gravity  float64
	Tick     int
	OriginX  float64
	OriginY  float64
	Width    float64
	Height   float64
	CutCount int
}

// Snapshot copies the current state into a Frame.
func (g *Game) Snapshot() Frame {
	bodies := make([]physics.Body, len(g.chain))
	for i, b := range g.chain {
		bodies[i] = *b
	}
	return Frame{
		Bodies:   bodies,
		Status:   g.Status(),
		Gravity:  g.gravity,
		Tick:     g.ticks,
		OriginX:  g.originX,
		OriginY:  g.originY,
		Width:    g.width,
		Height:   g.height,
		CutCount: g.chain.CutCount(),
	}
}

// Won reports whether the frame shows a finished climb.
func (f Frame) Won() bool { return f.Status == StatusWon }

// Climber returns body 0, the one being hauled up.
func (f Frame) Climber() (physics.Body, bool) {
	if len(f.Bodies) == 0 {
		return physics.Body{}, false
	}
	return f.Bodies[0], true
}
