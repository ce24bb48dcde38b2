package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// ValidateClip checks a clip threshold pair.
func ValidateClip(clipBottom, clipTop float64) error {
	if clipBottom < 0 || clipTop > 1 || clipBottom > clipTop {
		return fmt.Errorf("%w: clipBottom=%g clipTop=%g", ErrClipRange, clipBottom, clipTop)
	}
	return nil
}

// ClipValue maps one height to a cell value. Heights are normalised to
// [0,1]; values above clipTop are on, values below clipBottom are off, and
// the band between the two is on.
func ClipValue(v uint8, clipBottom, clipTop float64) uint8 {
	n := float64(v) / 255
	switch {
	case n > clipTop:
		return 1
	case n < clipBottom:
		return 0
	default:
		return 1
	}
}

// Clip thresholds a height map into a binary grid. The threshold pair is
// validated before any cell is computed.
func Clip(hm *HeightMap, clipBottom, clipTop float64) (*blockmap.Grid, error) {
	if err := ValidateClip(clipBottom, clipTop); err != nil {
		return nil, err
	}
	if hm == nil {
		return &blockmap.Grid{}, nil
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = ClipValue(uint8(v), clipBottom, clipTop)
	}

	cells := make([]uint8, len(hm.Data))
	for i, v := range hm.Data {
		cells[i] = lut[v]
	}
	return blockmap.NewGrid(hm.Width, hm.Length, cells)
}

// CutLevel returns the lowest height that Clip turns on, or 256 when no
// height does.
func CutLevel(clipBottom, clipTop float64) int {
	for v := 0; v < 256; v++ {
		if ClipValue(uint8(v), clipBottom, clipTop) == 1 {
			return v
		}
	}
	return 256
}

// CutPreview renders where the cut falls: white where the height map is at
// or above the cut level, black elsewhere. It is meant for a quick visual
// check; Clip is authoritative for the grid.
func CutPreview(hm *HeightMap, clipBottom, clipTop float64) (*image.Gray, error) {
	if err := ValidateClip(clipBottom, clipTop); err != nil {
		return nil, err
	}
	if hm == nil {
		return image.NewGray(image.Rectangle{}), nil
	}
	level := CutLevel(clipBottom, clipTop)
	if level > 255 {
		return image.NewGray(image.Rect(0, 0, hm.Width, hm.Length)), nil
	}
	return segment.Threshold(hm.Gray(), uint8(level)), nil
}
