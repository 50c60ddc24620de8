// Package gui runs the game in a desktop window.
//
// Unlike a terminal the window reports real key releases, so holding the
// climb key climbs and letting go stops. The game is ticked from ebiten's
// update goroutine and needs no message passing.
package gui

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/viz"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	title         = "ropeclimb"
)

// Config holds the window settings.
type Config struct {
	Width, Height int
	TPS           int
	Theme         string
}

func DefaultConfig() Config {
	return Config{
		Width:  defaultWidth,
		Height: defaultHeight,
		TPS:    60,
		Theme:  viz.ThemeClassic.Name,
	}
}

// App implements ebiten.Game around a single game.
type App struct {
	ctx    context.Context
	game   *game.Game
	input  inputSource
	theme  viz.Theme
	logger *log.Logger

	climbHeld bool
	announced bool

	palette    palette
	paletteFor string

	mu                 sync.Mutex
	outW, outH         int
	appliedW, appliedH int
	slider             sliderRect
}

type AppOption func(*App)

func WithLogger(logger *log.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func withInput(in inputSource) AppOption {
	return func(a *App) { a.input = in }
}

func NewApp(ctx context.Context, g *game.Game, cfg Config, opts ...AppOption) *App {
	a := &App{
		ctx:    ctx,
		game:   g,
		input:  keyboard{},
		theme:  viz.GetTheme(cfg.Theme),
		logger: log.New(io.Discard),
		outW:   cfg.Width,
		outH:   cfg.Height,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.layoutHUD(cfg.Width)
	return a
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, g *game.Game, cfg Config, opts ...AppOption) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	app := NewApp(ctx, g, cfg, opts...)
	app.logger.Info("window opened", "width", cfg.Width, "height", cfg.Height, "theme", app.theme.Name)
	err := ebiten.RunGame(app)
	app.logger.Info("window closed", "tick", g.TickCount())
	return err
}

// Update samples input, applies it and ticks the game once.
func (a *App) Update() error {
	select {
	case <-a.ctx.Done():
		return ebiten.Termination
	default:
	}
	return a.step(a.input.Poll(a.hud()))
}

func (a *App) step(c Controls) error {
	if c.Quit {
		return ebiten.Termination
	}
	if c.NextTheme {
		a.theme = viz.NextTheme(a.theme.Name)
		a.logger.Debug("theme changed", "theme", a.theme.Name)
	}

	if c.Cut {
		a.game.PressCut()
		a.announced = false
	}

	if c.ClimbHeld != a.climbHeld {
		if c.ClimbHeld {
			a.game.StartClimb()
		} else {
			a.game.StopClimb()
		}
		a.climbHeld = c.ClimbHeld
	}

	// The slider is hidden on the win screen.
	if !a.game.Won() {
		if c.Nudge != 0 {
			a.game.NudgeGravity(c.Nudge)
		}
		if c.Dragging {
			a.game.SetGravity(c.Slider)
		}
	}

	a.syncSize()

	if !a.game.Tick() && a.game.Won() && !a.announced {
		a.announced = true
		a.logger.Info("climber reached the top", "tick", a.game.TickCount(), "gravity", a.game.Gravity())
	}
	return nil
}

// syncSize hands a changed window size to the game as a new world size.
func (a *App) syncSize() {
	a.mu.Lock()
	w, h := a.outW, a.outH
	changed := w != a.appliedW || h != a.appliedH
	a.appliedW, a.appliedH = w, h
	a.mu.Unlock()

	if !changed || w <= 0 || h <= 0 {
		return
	}
	ww, wh := worldSize(w, h)
	a.game.Resize(ww, wh)
	a.layoutHUD(w)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.mu.Lock()
	a.outW, a.outH = outsideWidth, outsideHeight
	a.mu.Unlock()
	return outsideWidth, outsideHeight
}

func (a *App) layoutHUD(width int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := float64(width) / 4
	if w < 120 {
		w = 120
	}
	a.slider = sliderRect{X: 16, Y: 34, W: w, H: 6}
}

func (a *App) hud() sliderRect {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slider
}

// worldSize keeps the world a fixed height so the chain fits any window.
func worldSize(w, h int) (float64, float64) {
	return viz.WorldHeight * float64(w) / float64(h), viz.WorldHeight
}
