package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Rope    lipgloss.Color
	Body    lipgloss.Color
	Climber lipgloss.Color
	Cut     lipgloss.Color
	Origin  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Win     lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:    "classic",
		Rope:    lipgloss.Color("#ffffff"),
		Body:    lipgloss.Color("#ffffff"),
		Climber: lipgloss.Color("#ffffff"),
		Cut:     lipgloss.Color("#ffffff"),
		Origin:  lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#ffffff"),
		Win:     lipgloss.Color("#ffffff"),
	}

	ThemeNeon = Theme{
		Name:    "neon",
		Rope:    lipgloss.Color("#00ffff"), // Cyan
		Body:    lipgloss.Color("#ff00ff"), // Magenta
		Climber: lipgloss.Color("#ffff00"), // Yellow
		Cut:     lipgloss.Color("#666666"),
		Origin:  lipgloss.Color("#ff8800"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Accent:  lipgloss.Color("#ff00ff"),
		Win:     lipgloss.Color("#00ff00"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Rope:    lipgloss.Color("#00cc00"), // Green phosphor
		Body:    lipgloss.Color("#00ff00"),
		Climber: lipgloss.Color("#88ff88"),
		Cut:     lipgloss.Color("#005500"),
		Origin:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
		Win:     lipgloss.Color("#88ff88"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Rope:    lipgloss.Color("#00a8cc"),
		Body:    lipgloss.Color("#0077be"), // Ocean blue
		Climber: lipgloss.Color("#ffd700"),
		Cut:     lipgloss.Color("#4488aa"),
		Origin:  lipgloss.Color("#e0f0ff"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#ffd700"),
		Win:     lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Rope:    lipgloss.Color("#feca57"),
		Body:    lipgloss.Color("#ff6b6b"), // Coral
		Climber: lipgloss.Color("#ff9ff3"),
		Cut:     lipgloss.Color("#8b6b8c"),
		Origin:  lipgloss.Color("#fff5f5"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Win:     lipgloss.Color("#5fd068"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeNeon,
		ThemeRetro,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
