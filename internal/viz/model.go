package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ropeclimb/internal/game"
)

const (
	hudLines      = 3
	sliderWidth   = 20
	defaultCols   = 80
	defaultRows   = 24
	gravityStep   = game.GravityStep
	gravityCoarse = 1.0
)

// Input is where the model sends the player's actions. *sim.Loop
// implements it.
type Input interface {
	Send(ev game.Event) bool
	PulseClimb() bool
}

// FrameMsg carries a snapshot from the loop into the program.
type FrameMsg game.Frame

// Model renders frames and turns keys into game events. It never touches
// the game itself.
type Model struct {
	input    Input
	renderer *Renderer
	frame    game.Frame
	ready    bool

	width, height int
	theme         Theme
	styles        styles
	showGraph     bool
	angles        []float64
}

// ModelOption configures a Model.
type ModelOption func(*Model)

func WithTheme(name string) ModelOption {
	return func(m *Model) { m.setTheme(GetTheme(name)) }
}

func WithGraph(show bool) ModelOption {
	return func(m *Model) { m.showGraph = show }
}

func NewModel(input Input, opts ...ModelOption) Model {
	m := Model{
		input:  input,
		width:  defaultCols,
		height: defaultRows,
		angles: make([]float64, 0, historyCapacity),
	}
	m.setTheme(ThemeClassic)
	for _, opt := range opts {
		opt(&m)
	}
	m.renderer = NewRenderer(m.canvasSize())
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = newStyles(t)
}

func (m Model) Theme() Theme { return m.theme }

// canvasSize is the part of the terminal left for the game after the HUD.
func (m Model) canvasSize() (cols, rows int) {
	rows = m.height - hudLines
	if m.showGraph {
		rows -= graphLines()
	}
	return max(m.width, 1), max(rows, 1)
}

// resize fits the canvas to the terminal and tells the game about its new
// surface.
func (m *Model) resize() {
	m.renderer.Resize(m.canvasSize())
	w, h := m.renderer.WorldSize()
	m.input.Send(game.Resized{Width: w, Height: h})
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles input events and frames from the loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case FrameMsg:
		f := game.Frame(msg)
		if m.ready && m.frame.Won() && !f.Won() {
			m.angles = m.angles[:0]
		}
		if climber, ok := f.Climber(); ok && !f.Won() && f.Tick != m.frame.Tick {
			m.angles = pushHistory(m.angles, climber.Angle)
		}
		m.frame = f
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.input.Send(game.CutPressed{})
		case "up", "k", "w":
			m.input.PulseClimb()
		case "down", "j", "s":
			m.input.Send(game.ClimbStop{})
		case "-", "_":
			m.input.Send(game.GravityNudge{Delta: -gravityStep})
		case "+", "=":
			m.input.Send(game.GravityNudge{Delta: gravityStep})
		case "[":
			m.input.Send(game.GravityNudge{Delta: -gravityCoarse})
		case "]":
			m.input.Send(game.GravityNudge{Delta: gravityCoarse})
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "g":
			m.showGraph = !m.showGraph
			m.resize()
		}
	}
	return m, nil
}

// View renders the TUI interface.
func (m Model) View() string {
	if !m.ready {
		return m.styles.hint.Render("hanging the rope...")
	}
	if m.frame.Won() {
		return m.winView()
	}

	var s strings.Builder
	s.WriteString(m.styles.gravityLine(m.frame.Gravity, game.GravityMin, game.GravityMax, sliderWidth))
	s.WriteString("\n")
	s.WriteString(m.statusLine())
	s.WriteString("\n")
	s.WriteString(m.renderer.Draw(m.frame).Render(m.styles.inks))

	if m.showGraph {
		if chart := plotAngles(m.angles, m.width); chart != "" {
			s.WriteString(m.styles.graph.Render(chart))
			s.WriteString("\n")
		}
	}

	s.WriteString(m.styles.hint.Render("space: cut  ↑/k: climb  ↓: let go  -/+ [/]: gravity  t: theme  g: graph  q: quit"))
	return s.String()
}

func (m Model) statusLine() string {
	label := m.styles.label
	value := m.styles.value
	return label.Render("Status ") + value.Render(m.frame.Status.String()) +
		label.Render("   Tick ") + value.Render(fmt.Sprintf("%d", m.frame.Tick)) +
		label.Render("   Cut ") + value.Render(fmt.Sprintf("%d", m.frame.CutCount))
}

func (m Model) winView() string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render("You Win!"),
		"",
		m.styles.text.Render("The climber has reached the origin."),
		m.styles.text.Render("Press Space to play again!"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
