package metrics

import (
	"math"

	"github.com/san-kum/ropeclimb/internal/analysis"
	"github.com/san-kum/ropeclimb/internal/game"
)

// PeakSwing is the largest climber angle from vertical, in radians.
type PeakSwing struct {
	name string
	peak float64
}

func NewPeakSwing() *PeakSwing {
	return &PeakSwing{name: "peak_swing"}
}

func (p *PeakSwing) Name() string { return p.name }

func (p *PeakSwing) Observe(f game.Frame) {
	if climber, ok := f.Climber(); ok {
		p.peak = math.Max(p.peak, math.Abs(climber.Angle))
	}
}

func (p *PeakSwing) Value() float64 { return p.peak }
func (p *PeakSwing) Reset()         { p.peak = 0 }

// SwingPeriod is the dominant period of the climber's swing, in ticks. It
// is zero when the climber never swung.
type SwingPeriod struct {
	name   string
	angles []float64
}

func NewSwingPeriod() *SwingPeriod {
	return &SwingPeriod{name: "swing_period", angles: make([]float64, 0, 1024)}
}

func (s *SwingPeriod) Name() string { return s.name }

func (s *SwingPeriod) Observe(f game.Frame) {
	if climber, ok := f.Climber(); ok {
		s.angles = append(s.angles, climber.Angle)
	}
}

func (s *SwingPeriod) Value() float64 {
	period, ok := analysis.SwingPeriod(s.angles)
	if !ok {
		return 0
	}
	return period
}

func (s *SwingPeriod) Reset() { s.angles = s.angles[:0] }
