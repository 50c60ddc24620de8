package viz

import (
	"math"

	"github.com/san-kum/ropeclimb/internal/game"
)

const (
	// WorldHeight is the height of the game surface for any terminal size.
	// The width follows the terminal's aspect ratio; braille dots are
	// roughly square.
	WorldHeight = 1000.0

	// BobRadius is the drawn radius of every body, in world pixels.
	BobRadius = 10.0
)

// Renderer maps the game's pixel world onto a braille canvas of cols x rows
// terminal cells.
type Renderer struct {
	canvas *Canvas
}

func NewRenderer(cols, rows int) *Renderer {
	return &Renderer{canvas: NewCanvas(max(cols, 1), max(rows, 1))}
}

// Resize replaces the canvas when the terminal changes size.
func (r *Renderer) Resize(cols, rows int) {
	if cols == r.canvas.Width && rows == r.canvas.Height {
		return
	}
	r.canvas = NewCanvas(max(cols, 1), max(rows, 1))
}

// WorldSize is the game surface that exactly fills the canvas.
func (r *Renderer) WorldSize() (width, height float64) {
	w, h := r.subpixels()
	return WorldHeight * float64(w) / float64(h), WorldHeight
}

func (r *Renderer) subpixels() (int, int) {
	return r.canvas.Width * 2, r.canvas.Height * 4
}

// scale and horizontal offset that fit a world of the frame's size.
func (r *Renderer) fit(f game.Frame) (scale, offsetX float64) {
	w, h := r.subpixels()
	worldW, worldH := f.Width, f.Height
	if worldW <= 0 || worldH <= 0 {
		worldW, worldH = r.WorldSize()
	}
	scale = math.Min(float64(w)/worldW, float64(h)/worldH)
	offsetX = (float64(w) - worldW*scale) / 2
	return scale, offsetX
}

// Project maps a world point of frame f to canvas sub-pixels.
func (r *Renderer) Project(f game.Frame, x, y float64) (int, int) {
	scale, ox := r.fit(f)
	return project(scale, ox, x, y)
}

func project(scale, ox, x, y float64) (int, int) {
	return int(math.Round(ox + x*scale)), int(math.Round(y * scale))
}

// Draw paints f onto the canvas: ropes for uncut bodies, then every bob.
func (r *Renderer) Draw(f game.Frame) *Canvas {
	c := r.canvas
	c.Clear()

	scale, ox := r.fit(f)
	radius := max(int(math.Round(BobRadius*scale)), 1)

	c.Pen(InkOrigin)
	oxp, oyp := project(scale, ox, f.OriginX, f.OriginY)
	c.DrawLine(oxp-radius, oyp, oxp+radius, oyp)

	c.Pen(InkRope)
	for _, b := range f.Bodies {
		if b.Cut {
			continue
		}
		if !r.drawable(b.AnchorX, b.AnchorY, scale, ox) || !r.drawable(b.BobX, b.BobY, scale, ox) {
			continue
		}
		x0, y0 := project(scale, ox, b.AnchorX, b.AnchorY)
		x1, y1 := project(scale, ox, b.BobX, b.BobY)
		c.DrawLine(x0, y0, x1, y1)
	}

	for i, b := range f.Bodies {
		switch {
		case i == 0:
			c.Pen(InkClimber)
		case b.Cut:
			c.Pen(InkCut)
		default:
			c.Pen(InkBody)
		}
		if !r.drawable(b.BobX, b.BobY, scale, ox) {
			continue
		}
		x, y := project(scale, ox, b.BobX, b.BobY)
		c.DrawCircle(x, y, radius)
	}

	return c
}

// drawable rejects points that are non-finite or so far off screen that
// rasterizing a line to them would take too long.
func (r *Renderer) drawable(x, y, scale, ox float64) bool {
	w, h := r.subpixels()
	px, py := ox+x*scale, y*scale
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return false
	}
	return px > -4*float64(w) && px < 5*float64(w) && py > -4*float64(h) && py < 5*float64(h)
}
