package blockmap

import "fmt"

// Grid is an immutable row-major binary raster.
//
// Cells holds Width*Height values, each 0 (off/background) or 1
// (on/foreground). A zero-area grid (Width or Height of 0) is valid and
// carries no cells.
type Grid struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Cells  []uint8 `json:"cells"`
}

// Cell is an integer cell coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewGrid validates the dimensions and values and wraps them in a Grid.
//
// Parameters:
//   - width, height: grid dimensions. Negative values are rejected.
//   - cells: row-major values. The slice is used as-is, not copied.
//
// Returns:
//   - *Grid: the validated grid.
//   - error: ErrGridSize if len(cells) != width*height, ErrNonBinary if any
//     value is not 0 or 1.
func NewGrid(width, height int, cells []uint8) (*Grid, error) {
	if width < 0 || height < 0 || len(cells) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrGridSize, width, height, len(cells))
	}
	for i, v := range cells {
		if v > 1 {
			return nil, fmt.Errorf("%w: value %d at index %d", ErrNonBinary, v, i)
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}, nil
}

// FromRows builds a Grid from a slice of equally long rows.
// An empty slice yields an empty 0x0 grid.
func FromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}
	width := len(rows[0])
	cells := make([]uint8, 0, width*len(rows))
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrNonRectangular
		}
		cells = append(cells, row...)
	}
	return NewGrid(width, len(rows), cells)
}

// At returns the value at (x, y), or 0 outside the grid.
func (g *Grid) At(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Cells[y*g.Width+x]
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Count returns the number of on-cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.Cells {
		n += int(v)
	}
	return n
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.Height)
	for y := range rows {
		rows[y] = append([]uint8(nil), g.Cells[y*g.Width:(y+1)*g.Width]...)
	}
	return rows
}
