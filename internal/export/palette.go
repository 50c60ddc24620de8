// Package export writes game frames and runs to image files.
package export

import (
	"math"

	"github.com/san-kum/ropeclimb/internal/viz"
)

// Palette holds the hex colours used by the vector and raster exports.
type Palette struct {
	Background string
	Rope       string
	Bob        string
	Climber    string
	Text       string
}

// DefaultPalette is white on black.
var DefaultPalette = Palette{
	Background: "#000000",
	Rope:       "#ffffff",
	Bob:        "#ffffff",
	Climber:    "#ffffff",
	Text:       "#ffffff",
}

// BobRadius is the drawn radius of every body, in world pixels.
const BobRadius = 10.0

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ThemePalette takes the colours of a terminal theme, on black.
func ThemePalette(t viz.Theme) Palette {
	return Palette{
		Background: "#000000",
		Rope:       string(t.Rope),
		Bob:        string(t.Body),
		Climber:    string(t.Climber),
		Text:       string(t.Text),
	}
}
