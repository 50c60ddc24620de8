package config

import "sort"

// Preset is a named start-up gravity.
type Preset struct {
	Name        string
	Description string
	Gravity     float64
}

// Presets holds the gravity presets. Values above the slider maximum are
// clamped by the game.
var Presets = map[string]*Preset{
	"earth":   {Name: "earth", Description: "standard gravity", Gravity: 9.81},
	"moon":    {Name: "moon", Description: "lunar surface", Gravity: 1.62},
	"mars":    {Name: "mars", Description: "martian surface", Gravity: 3.71},
	"jupiter": {Name: "jupiter", Description: "cloud tops, clamped to the slider", Gravity: 20},
	"zero-g":  {Name: "zero-g", Description: "no gravity, the climb is instant", Gravity: 0},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets the config's start-up gravity to the preset's.
func (p *Preset) Apply(cfg *Config) {
	cfg.Gravity = p.Gravity
}
