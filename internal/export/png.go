package export

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/san-kum/ropeclimb/internal/game"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const hudFontSize = 16.0

// FrameToPNG rasterizes a frame at world scale and writes it as PNG.
func FrameToPNG(w io.Writer, f game.Frame, p Palette) error {
	dc, err := drawFrame(f, p)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SaveFramePNG writes the frame to a PNG file.
func SaveFramePNG(path string, f game.Frame, p Palette) error {
	dc, err := drawFrame(f, p)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func drawFrame(f game.Frame, p Palette) (*gg.Context, error) {
	width, height := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame has no size: %gx%g", f.Width, f.Height)
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(p.Background)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}

	if f.Won() {
		dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
			Size:    2 * hudFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
		dc.SetHexColor(p.Text)
		dc.DrawStringAnchored("You Win!", f.Width/2, f.Height/2, 0.5, 0.5)
	} else {
		dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
			Size:    hudFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
		dc.SetHexColor(p.Text)
		dc.DrawString(fmt.Sprintf("Gravity: %.2f", f.Gravity), 10, 24)
	}

	dc.SetLineWidth(1.0)
	dc.SetHexColor(p.Rope)
	for _, b := range f.Bodies {
		if b.Cut || !finite(b.AnchorX, b.AnchorY, b.BobX, b.BobY) {
			continue
		}
		dc.DrawLine(b.AnchorX, b.AnchorY, b.BobX, b.BobY)
		dc.Stroke()
	}

	for i, b := range f.Bodies {
		if !finite(b.BobX, b.BobY) {
			continue
		}
		if i == 0 {
			dc.SetHexColor(p.Climber)
		} else {
			dc.SetHexColor(p.Bob)
		}
		dc.DrawCircle(b.BobX, b.BobY, BobRadius)
		dc.Fill()
	}

	return dc, nil
}
