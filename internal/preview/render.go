package preview

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
	"github.com/ironsheep/stamp-motif-mcp/internal/motif"
)

// DefaultScale is the number of pixels per grid cell.
const DefaultScale = 4.0

// MaxPixels caps the area of a rendered preview.
const MaxPixels = 4096 * 4096

// Colors used by the renderers.
var (
	Paper   = gg.White
	Ink     = gg.Black
	Outline = gg.RGB(0.85, 0.1, 0.1)
	Hole    = gg.RGB(0.1, 0.3, 0.85)
)

// Options controls preview rendering.
type Options struct {
	// Scale is the number of pixels per grid cell. Zero selects
	// DefaultScale.
	Scale float64
	// Contours strokes traced outlines over the fill.
	Contours bool
	// LineWidth of stroked contours in pixels. Zero selects 1.
	LineWidth float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

func canvas(width, height int, scale float64) (*gg.Context, error) {
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrEmpty, width, height)
	}
	if w*h > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, w, h)
	}
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(Paper)
	return dc, nil
}

func snapshot(dc *gg.Context) *image.RGBA {
	_ = dc.FlushGPU()
	img, _ := dc.Image().(*image.RGBA)
	return img
}

func addShape(dc *gg.Context, s blockmap.Shape, scale float64) {
	if len(s) == 0 {
		return
	}
	dc.MoveTo(s[0].X*scale, s[0].Y*scale)
	for _, v := range s[1:] {
		dc.LineTo(v.X*scale, v.Y*scale)
	}
	dc.ClosePath()
}

// RenderShapes draws traced components on a width x height cell canvas.
// Each outline is filled with its holes cut out using the even-odd rule.
func RenderShapes(width, height int, components []motif.Component, opts Options) (*image.RGBA, error) {
	scale := opts.scale()
	dc, err := canvas(width, height, scale)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()

	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetColor(Ink.Color())
	for _, c := range components {
		addShape(dc, c.Shape, scale)
		for _, h := range c.HoleShapes {
			addShape(dc, h, scale)
		}
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("filling component: %w", err)
		}
	}

	if opts.Contours {
		lw := opts.LineWidth
		if lw <= 0 {
			lw = 1
		}
		dc.SetLineWidth(lw)
		for _, c := range components {
			dc.SetColor(Outline.Color())
			addShape(dc, c.Shape, scale)
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("stroking outline: %w", err)
			}
			if len(c.HoleShapes) == 0 {
				continue
			}
			dc.SetColor(Hole.Color())
			for _, h := range c.HoleShapes {
				addShape(dc, h, scale)
			}
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("stroking holes: %w", err)
			}
		}
	}

	return snapshot(dc), nil
}

// RenderMask draws the on-cells of a grid as ink squares.
func RenderMask(grid *blockmap.Grid, opts Options) (*image.RGBA, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrEmpty)
	}
	scale := opts.scale()
	dc, err := canvas(grid.Width, grid.Height, scale)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()

	dc.SetColor(Ink.Color())
	for y := 0; y < grid.Height; y++ {
		// one rectangle per horizontal run
		for x := 0; x < grid.Width; {
			if grid.At(x, y) == 0 {
				x++
				continue
			}
			start := x
			for x < grid.Width && grid.At(x, y) != 0 {
				x++
			}
			dc.DrawRectangle(float64(start)*scale, float64(y)*scale, float64(x-start)*scale, scale)
		}
	}
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("filling mask: %w", err)
	}

	return snapshot(dc), nil
}
