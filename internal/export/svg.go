package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/sim"
	"github.com/san-kum/ropeclimb/internal/viz"
)

// FrameToSVG draws a frame at world scale: ropes for uncut bodies, a disc
// for every bob, and the gravity readout or the win message.
func FrameToSVG(f game.Frame, p Palette) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, f.Width, f.Height, f.Width, f.Height, p.Background))

	if f.Won() {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="32" text-anchor="middle">You Win!</text>
`, f.Width/2, f.Height/2, p.Text))
	} else {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="24" fill="%s" font-family="monospace" font-size="16">Gravity: %.2f</text>
`, p.Text, f.Gravity))
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, p.Rope))
	for _, b := range f.Bodies {
		if b.Cut || !finite(b.AnchorX, b.AnchorY, b.BobX, b.BobY) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, b.AnchorX, b.AnchorY, b.BobX, b.BobY))
	}
	sb.WriteString("</g>\n")

	for i, b := range f.Bodies {
		if !finite(b.BobX, b.BobY) {
			continue
		}
		fill := p.Bob
		if i == 0 {
			fill = p.Climber
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.0f" fill="%s"/>
`, b.BobX, b.BobY, BobRadius, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, p Palette) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, p.Background, p.Rope))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ClimbPathToSVG traces the climber's bob over a run in world coordinates,
// from its start to the origin if it got there.
func ClimbPathToSVG(trace []sim.Sample, width, height float64, p Palette) string {
	if len(trace) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, p.Background, p.Rope))

	first := true
	for _, s := range trace {
		if !finite(s.BobX, s.BobY) {
			continue
		}
		if first {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", s.BobX, s.BobY))
			first = false
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", s.BobX, s.BobY))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
