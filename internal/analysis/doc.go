// Package analysis looks at the swing of a recorded climb.
//
//   - [SwingPeriod]: dominant period of a signal, from its power spectrum
//   - [PhasePortraitOf]: angle against angular velocity of the climber
//
// A climber that is cut loose swings faster, so the period drops after the
// cut:
//
//	period, ok := analysis.SwingPeriod(angles)
//	if ok {
//	    fmt.Printf("%.1f ticks per swing\n", period)
//	}
package analysis
