package sim

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/ropeclimb/internal/game"
	"gopkg.in/yaml.v3"
)

// Script actions.
const (
	ActionClimbStart = "climb_start"
	ActionClimbStop  = "climb_stop"
	ActionCut        = "cut"
	ActionGravity    = "gravity"
	ActionNudge      = "nudge"
	ActionResize     = "resize"
)

// Script is a scripted sequence of player inputs.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Gravity     *float64     `yaml:"gravity,omitempty"`
	MaxTicks    int          `yaml:"max_ticks,omitempty"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep is one input delivered right before the given tick.
type ScriptStep struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	Value  float64 `yaml:"value,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// LoadScript loads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Validate checks every step can be turned into a game event.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if step.Tick < 0 {
			return fmt.Errorf("step %d: negative tick %d", i+1, step.Tick)
		}
		if _, err := step.Event(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Event converts the step into the input it stands for.
func (st ScriptStep) Event() (game.Event, error) {
	switch st.Action {
	case ActionClimbStart:
		return game.ClimbStart{}, nil
	case ActionClimbStop:
		return game.ClimbStop{}, nil
	case ActionCut:
		return game.CutPressed{}, nil
	case ActionGravity:
		return game.GravitySet{Value: st.Value}, nil
	case ActionNudge:
		return game.GravityNudge{Delta: st.Value}, nil
	case ActionResize:
		if st.Width <= 0 || st.Height <= 0 {
			return nil, fmt.Errorf("resize needs a positive size, got %gx%g", st.Width, st.Height)
		}
		return game.Resized{Width: st.Width, Height: st.Height}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
}

// Schedule groups the script's events by tick, keeping the file order of
// steps that share a tick. A nil script schedules nothing.
func (s *Script) Schedule() (map[int][]game.Event, error) {
	schedule := make(map[int][]game.Event)
	if s == nil {
		return schedule, nil
	}

	steps := make([]ScriptStep, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Tick < steps[j].Tick })

	for i, step := range steps {
		ev, err := step.Event()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		schedule[step.Tick] = append(schedule[step.Tick], ev)
	}
	return schedule, nil
}

// Save writes the script as YAML.
func (s *Script) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// QuickScript builds the common "climb from tick a, cut at tick b" script.
// A negative tick leaves that input out.
func QuickScript(climbAt, cutAt int) *Script {
	s := &Script{Name: "quick"}
	if cutAt >= 0 {
		s.Steps = append(s.Steps, ScriptStep{Tick: cutAt, Action: ActionCut})
	}
	if climbAt >= 0 {
		s.Steps = append(s.Steps, ScriptStep{Tick: climbAt, Action: ActionClimbStart})
	}
	return s
}
