package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/ropeclimb/internal/game"
)

// Controls is one frame's worth of input, sampled before the tick.
type Controls struct {
	Cut       bool
	ClimbHeld bool
	Nudge     float64
	Slider    float64 // Gravity picked on the slider; valid when Dragging
	Dragging  bool
	NextTheme bool
	Quit      bool
}

// inputSource samples the input devices once per frame.
type inputSource interface {
	Poll(slider sliderRect) Controls
}

type keyboard struct{}

func (keyboard) Poll(slider sliderRect) Controls {
	c := Controls{
		Cut:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		ClimbHeld: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyK),
		NextTheme: inpututil.IsKeyJustPressed(ebiten.KeyT),
		Quit:      inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		c.Nudge = -game.GravityStep
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		c.Nudge = game.GravityStep
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		c.Nudge = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		c.Nudge = 1
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if v, ok := slider.valueAt(float64(x), float64(y)); ok {
			c.Slider, c.Dragging = v, true
		}
	}
	return c
}

// sliderRect is the gravity slider track in screen pixels.
type sliderRect struct {
	X, Y, W, H float64
}

// valueAt maps a cursor position on the track to a gravity value.
func (s sliderRect) valueAt(x, y float64) (float64, bool) {
	if s.W <= 0 || x < s.X || x > s.X+s.W || y < s.Y-s.H || y > s.Y+2*s.H {
		return 0, false
	}
	frac := (x - s.X) / s.W
	return game.GravityMin + frac*(game.GravityMax-game.GravityMin), true
}

// knobX is where the knob sits for gravity g.
func (s sliderRect) knobX(g float64) float64 {
	return s.X + s.W*(g-game.GravityMin)/(game.GravityMax-game.GravityMin)
}
