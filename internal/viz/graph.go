package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	historyCapacity = 300
	graphHeight     = 6
	graphMargin     = 10 // Room asciigraph needs for axis labels
)

// pushHistory appends v and keeps the last historyCapacity values.
func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[len(h)-historyCapacity:]
	}
	return h
}

// plotAngles charts the climber's angle history. It returns "" until there
// are at least two points to connect.
func plotAngles(values []float64, width int) string {
	if len(values) < 2 || width <= graphMargin {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(graphHeight),
		asciigraph.Width(width-graphMargin),
		asciigraph.Caption("climber angle (rad)"),
	)
}

// graphLines is the number of terminal rows plotAngles output takes.
func graphLines() int {
	return graphHeight + 2
}
