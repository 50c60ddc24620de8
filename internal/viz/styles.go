package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles holds everything a theme decides about the look of a frame.
type styles struct {
	inks   [inkCount]lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	slider lipgloss.Style
	hint   lipgloss.Style
	title  lipgloss.Style
	text   lipgloss.Style
	graph  lipgloss.Style
}

func newStyles(t Theme) styles {
	var s styles
	s.inks[InkNone] = lipgloss.NewStyle()
	s.inks[InkRope] = lipgloss.NewStyle().Foreground(t.Rope)
	s.inks[InkBody] = lipgloss.NewStyle().Foreground(t.Body)
	s.inks[InkClimber] = lipgloss.NewStyle().Foreground(t.Climber).Bold(true)
	s.inks[InkCut] = lipgloss.NewStyle().Foreground(t.Cut)
	s.inks[InkOrigin] = lipgloss.NewStyle().Foreground(t.Origin)

	s.label = lipgloss.NewStyle().Foreground(t.Muted)
	s.value = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.slider = lipgloss.NewStyle().Foreground(t.Accent)
	s.hint = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	s.title = lipgloss.NewStyle().Foreground(t.Win).Bold(true)
	s.text = lipgloss.NewStyle().Foreground(t.Text)
	s.graph = lipgloss.NewStyle().Foreground(t.Accent)
	return s
}

// Slider renders value on a [min, max] track of the given width.
func Slider(value, min, max float64, width int) string {
	if width < 3 {
		width = 3
	}
	pos := 0
	if max > min {
		pos = int((value - min) / (max - min) * float64(width-1))
	}
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}
	return "[" + strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-1-pos) + "]"
}

// gravityLine is the HUD row holding the gravity slider.
func (s styles) gravityLine(gravity, min, max float64, width int) string {
	return s.label.Render("Gravity: ") +
		s.slider.Render(Slider(gravity, min, max, width)) +
		s.value.Render(fmt.Sprintf(" %5.2f", gravity))
}
