package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/physics"
)

// Simulator drives a game without a display, as fast as it can tick.
type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run plays script against g for at most cfg.MaxTicks ticks. It stops early
// when the climber wins. Script steps fire right before the tick they name,
// counting from zero.
func (s *Simulator) Run(ctx context.Context, g *game.Game, script *Script, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	schedule, err := script.Schedule()
	if err != nil {
		return nil, err
	}

	result := &Result{
		WonAt:   -1,
		Metrics: make(map[string]float64),
	}
	if cfg.Trace {
		result.Trace = make([]Sample, 0, cfg.MaxTicks)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for tick := 0; tick < cfg.MaxTicks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, ev := range schedule[tick] {
			g.Apply(ev)
		}

		running := g.Tick()
		frame := g.Snapshot()
		result.Ticks++

		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnTick(frame)
		}
		if cfg.Trace {
			result.Trace = append(result.Trace, sampleOf(frame, g.Bodies()))
		}

		if cfg.ValidateState {
			if err := g.Bodies().Validate(); err != nil {
				result.Final = frame
				return result, &SimulationError{Tick: frame.Tick, Wrapped: err}
			}
		}

		if !running {
			result.Won = g.Won()
			if result.Won {
				result.WonAt = frame.Tick
			}
			break
		}
	}

	result.Final = g.Snapshot()
	result.Gravity = g.Gravity()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("%w, got %d", ErrNoTicks, cfg.MaxTicks)
	}
	return nil
}

func sampleOf(f game.Frame, chain physics.Chain) Sample {
	climber, _ := f.Climber()
	return Sample{
		Tick:            f.Tick,
		Angle:           climber.Angle,
		AngularVelocity: climber.AngularVelocity,
		Length:          climber.Length,
		BobX:            climber.BobX,
		BobY:            climber.BobY,
		Energy:          chain.Energy(f.Gravity),
		Gravity:         f.Gravity,
		Cut:             f.CutCount,
		Status:          f.Status,
	}
}
