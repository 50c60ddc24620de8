// Package metrics summarizes headless runs of the climbing game.
package metrics

import "github.com/san-kum/ropeclimb/internal/sim"

// Default returns a fresh set of every metric, safe to hand to one run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyLoss(),
		NewClimbHeight(),
		NewPeakSwing(),
		NewSwingPeriod(),
		NewCutTick(),
		NewClimbTime(),
	}
}
