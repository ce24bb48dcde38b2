package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// Ink and paper colors of a rendered mask. A stamp prints its raised cells,
// so on-cells are ink.
var (
	Ink   = color.NRGBA{0, 0, 0, 255}
	Paper = color.NRGBA{255, 255, 255, 255}
)

// MaskImage renders grid as ink on paper, every cell scaled to a
// scale x scale block and the whole surrounded by a paper margin of margin
// cells. Tesseract reads small glyphs poorly, so callers usually scale the
// 150-cell motif grid up several times.
func MaskImage(grid *blockmap.Grid, scale, margin int) *image.NRGBA {
	scale = max(scale, 1)
	margin = max(margin, 0)

	cells := image.NewNRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := Paper
			if grid.At(x, y) == 1 {
				c = Ink
			}
			cells.SetNRGBA(x, y, c)
		}
	}

	w, h := (grid.Width+2*margin)*scale, (grid.Height+2*margin)*scale
	out := imaging.New(w, h, Paper)
	if grid.Width == 0 || grid.Height == 0 {
		return out
	}

	scaled := imaging.Resize(cells, grid.Width*scale, grid.Height*scale, imaging.NearestNeighbor)
	return imaging.Paste(out, scaled, image.Pt(margin*scale, margin*scale))
}
