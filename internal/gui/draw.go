package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/viz"
)

const (
	bobRadius   = 10.0
	ropeWidth   = 2.0
	glyphWidth  = 6 // ebitenutil debug font
	glyphHeight = 16
)

var background = color.RGBA{0, 0, 0, 255}

type palette struct {
	rope, body, climber, cut, origin, text, muted color.Color
}

func paletteOf(t viz.Theme) palette {
	return palette{
		rope:    hexColor(string(t.Rope)),
		body:    hexColor(string(t.Body)),
		climber: hexColor(string(t.Climber)),
		cut:     hexColor(string(t.Cut)),
		origin:  hexColor(string(t.Origin)),
		text:    hexColor(string(t.Text)),
		muted:   hexColor(string(t.Muted)),
	}
}

// hexColor falls back to white for anything that is not a hex colour.
func hexColor(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.White
	}
	return c
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.paletteFor != a.theme.Name {
		a.palette = paletteOf(a.theme)
		a.paletteFor = a.theme.Name
	}
	screen.Fill(background)

	f := a.game.Snapshot()
	if f.Won() {
		a.drawWin(screen)
		return
	}
	a.drawChain(screen, f)
	a.drawHUD(screen, f)
}

func (a *App) drawChain(screen *ebiten.Image, f game.Frame) {
	b := screen.Bounds()
	scale := float64(b.Dy()) / viz.WorldHeight
	p := a.palette

	ox, oy := float32(f.OriginX*scale), float32(f.OriginY*scale)
	vector.DrawFilledCircle(screen, ox, oy, 3, p.origin, true)

	for _, body := range f.Bodies {
		if body.Cut || !onScreen(scale, body.AnchorX, body.AnchorY, body.BobX, body.BobY) {
			continue
		}
		vector.StrokeLine(screen,
			float32(body.AnchorX*scale), float32(body.AnchorY*scale),
			float32(body.BobX*scale), float32(body.BobY*scale),
			ropeWidth, p.rope, true)
	}

	for i, body := range f.Bodies {
		if !onScreen(scale, body.BobX, body.BobY) {
			continue
		}
		clr := p.body
		switch {
		case i == 0:
			clr = p.climber
		case body.Cut:
			clr = p.cut
		}
		vector.DrawFilledCircle(screen, float32(body.BobX*scale), float32(body.BobY*scale),
			float32(bobRadius*scale), clr, true)
	}
}

func (a *App) drawHUD(screen *ebiten.Image, f game.Frame) {
	s := a.hud()
	p := a.palette

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Gravity: %.2f", f.Gravity), int(s.X), int(s.Y)-24)

	vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), p.muted, false)
	vector.DrawFilledCircle(screen, float32(s.knobX(f.Gravity)), float32(s.Y+s.H/2), float32(s.H), p.text, true)

	status := fmt.Sprintf("%s  tick %d  cut %d", f.Status, f.Tick, f.CutCount)
	ebitenutil.DebugPrintAt(screen, status, int(s.X), int(s.Y)+16)

	hint := "space cut  up climb  -/+ gravity  t theme  q quit"
	ebitenutil.DebugPrintAt(screen, hint, int(s.X), screen.Bounds().Dy()-glyphHeight-8)
}

func (a *App) drawWin(screen *ebiten.Image) {
	b := screen.Bounds()
	lines := []string{"You Win!", "Press Space to play again!"}
	y := b.Dy()/2 - glyphHeight
	for _, line := range lines {
		x := (b.Dx() - len(line)*glyphWidth) / 2
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += glyphHeight + 8
	}
}

// onScreen rejects points that cannot be drawn, such as a bob that shot
// off to infinity after an instant climb in zero gravity.
func onScreen(scale float64, coords ...float64) bool {
	const limit = 1e6
	for _, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v*scale) > limit {
			return false
		}
	}
	return true
}
