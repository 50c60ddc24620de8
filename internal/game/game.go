package game

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ropeclimb/internal/physics"
)

// Fixed rules of the climb.
const (
	OriginY    = 50.0  // Height of the pivot; reaching it wins
	ClimbPower = 100.0 // Constant power output of the climber
)

// Gravity slider bounds.
const (
	GravityMin     = 0.0
	GravityMax     = 20.0
	GravityStep    = 0.1
	DefaultGravity = 9.81
)

// Default drawing surface, used until the first Resize.
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 1000.0
)

// Game holds the chain and the interaction state around it.
type Game struct {
	chain    physics.Chain
	gravity  float64
	climbing bool
	won      bool
	ticks    int

	originX, originY float64
	width, height    float64

	logger *log.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithGravity sets the starting gravity, clamped to the slider range but
// not snapped to its step, so 9.81 stays 9.81 until the slider moves.
func WithGravity(g float64) Option {
	return func(gm *Game) { gm.setGravity(g) }
}

// WithViewport sets the starting drawing surface size.
func WithViewport(width, height float64) Option {
	return func(gm *Game) {
		gm.width, gm.height = width, height
		gm.originX = width / 2
	}
}

// WithLogger routes state transitions to l.
func WithLogger(l *log.Logger) Option {
	return func(gm *Game) {
		if l != nil {
			gm.logger = l
		}
	}
}

// New creates a game with a fresh chain hanging from the origin.
func New(opts ...Option) *Game {
	g := &Game{
		gravity: DefaultGravity,
		width:   DefaultWidth,
		height:  DefaultHeight,
		originX: DefaultWidth / 2,
		originY: OriginY,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.initChain()
	return g
}

func (g *Game) initChain() {
	g.chain = physics.NewChain(g.originX, g.originY)
	g.logger.Debug("chain initialized", "bodies", len(g.chain), "origin_x", g.originX)
}

// Tick advances the game by one frame. It reports whether another frame
// should be scheduled; once the game is won it returns false and leaves
// all state untouched.
func (g *Game) Tick() bool {
	if g.won {
		return false
	}
	g.ticks++

	if g.climbing {
		climber := g.chain[0]
		// Velocity = Power / Force, Force = m * g
		speed := ClimbPower / (g.chain.UncutMass() * g.gravity)

		climber.BobY -= speed * math.Cos(climber.Angle)
		climber.BobX -= speed * math.Sin(climber.Angle)
		climber.Length -= speed

		if climber.BobY <= g.originY {
			g.won = true
			g.logger.Info("win", "tick", g.ticks, "gravity", g.gravity)
			return false
		}
	}

	g.chain.Step(g.gravity)
	return true
}

// PressCut cuts everything below the climber, or restarts a won game.
func (g *Game) PressCut() {
	if g.won {
		g.logger.Info("restarting")
		g.Reset()
		return
	}
	g.chain.CutBelow(1)
	g.logger.Debug("chain cut", "cut", g.chain.CutCount())
}

// StartClimb marks the climb trigger as held.
func (g *Game) StartClimb() {
	if !g.climbing {
		g.logger.Debug("climb started")
	}
	g.climbing = true
}

// StopClimb releases the climb trigger.
func (g *Game) StopClimb() {
	if g.climbing {
		g.logger.Debug("climb stopped")
	}
	g.climbing = false
}

// SetGravity moves the slider to v, snapped to the slider step and clamped
// to its range. NaN is ignored.
func (g *Game) SetGravity(v float64) {
	if math.IsNaN(v) {
		return
	}
	g.setGravity(snap(v))
}

func (g *Game) setGravity(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = math.Max(GravityMin, math.Min(GravityMax, v))
	if v != g.gravity {
		g.logger.Debug("gravity updated", "gravity", v)
	}
	g.gravity = v
}

// NudgeGravity moves the slider by delta and snaps it to the slider step.
func (g *Game) NudgeGravity(delta float64) {
	g.SetGravity(g.gravity + delta)
}

func snap(v float64) float64 {
	return math.Round(v/GravityStep) / (1 / GravityStep)
}

// Resize re-centres the origin on a new drawing surface and re-anchors
// the chain.
func (g *Game) Resize(width, height float64) {
	g.width, g.height = width, height
	g.originX = width / 2
	g.chain.AnchorTo(g.originX, g.originY)
	g.logger.Debug("resized", "width", width, "height", height)
}

// Reset replaces the chain with a fresh one and clears the win. The climb
// hold and gravity are input state and survive a reset.
func (g *Game) Reset() {
	g.initChain()
	g.won = false
}

// Status reports the interaction phase.
func (g *Game) Status() Status {
	switch {
	case g.won:
		return StatusWon
	case g.climbing:
		return StatusClimbing
	default:
		return StatusIdle
	}
}

func (g *Game) Won() bool        { return g.won }
func (g *Game) Climbing() bool   { return g.climbing }
func (g *Game) Gravity() float64 { return g.gravity }
func (g *Game) TickCount() int   { return g.ticks }

// Origin returns the pivot of the climber's rope.
func (g *Game) Origin() (x, y float64) { return g.originX, g.originY }

// Viewport returns the current drawing surface size.
func (g *Game) Viewport() (width, height float64) { return g.width, g.height }

// Bodies exposes the live chain. Callers must not retain it across ticks.
func (g *Game) Bodies() physics.Chain { return g.chain }
