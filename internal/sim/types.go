package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/ropeclimb/internal/game"
)

var (
	// ErrNoTicks indicates a headless run with no tick budget.
	ErrNoTicks = errors.New("sim: max ticks must be positive")

	// ErrUnknownAction indicates a script step the game cannot perform.
	ErrUnknownAction = errors.New("sim: unknown script action")
)

// SimulationError wraps a failure with the tick it happened on.
type SimulationError struct {
	Tick    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// Metric accumulates a single number over the frames of a run.
type Metric interface {
	Name() string
	Observe(f game.Frame)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(f game.Frame)
}

// Config bounds a headless run.
type Config struct {
	MaxTicks      int
	ValidateState bool // Stop with a SimulationError once a body goes non-finite
	Trace         bool // Record a Sample per tick
}

func DefaultConfig() Config {
	return Config{
		MaxTicks:      3600,
		ValidateState: true,
		Trace:         true,
	}
}

// Sample is the climber's state after one tick.
type Sample struct {
	Tick            int
	Angle           float64
	AngularVelocity float64
	Length          float64
	BobX, BobY      float64
	Energy          float64
	Gravity         float64
	Cut             int
	Status          game.Status
}

// Result summarizes a headless run.
type Result struct {
	Ticks   int
	Won     bool
	WonAt   int // Tick of the win, -1 if the climber never made it
	Gravity float64
	Trace   []Sample
	Metrics map[string]float64
	Final   game.Frame
}
