package blockmap

// Holes returns the background regions fully enclosed by the chunk, in grid
// coordinates.
//
// The chunk's bounding box is padded by one cell on every side and turned
// into a local grid in which the chunk's cells are off and everything else is
// on. Labelling that grid always gives id 0 to the region touching the
// padding ring (its top-left cell is padding), so id 0 is discarded and every
// remaining component is a hole. A hole can contain on-cells of other chunks;
// it is defined by the chunk alone.
//
// The local grid is allocated, labelled and dropped inside this call; no state
// is shared with the caller's labelling.
//
// A chunk without interior gaps, or an empty chunk, yields no holes.
func Holes(chunk Chunk) []Chunk {
	lo, hi, ok := chunk.Bounds()
	if !ok {
		return nil
	}

	width := hi.X - lo.X + 3
	height := hi.Y - lo.Y + 3
	offsetX := lo.X - 1
	offsetY := lo.Y - 1

	cells := make([]uint8, width*height)
	for i := range cells {
		cells[i] = 1
	}
	for _, p := range chunk {
		cells[(p.X-offsetX)+(p.Y-offsetY)*width] = 0
	}

	local := &Grid{Width: width, Height: height, Cells: cells}
	regions := Group(Label(local), width)
	if len(regions) <= 1 {
		return nil
	}

	holes := make([]Chunk, 0, len(regions)-1)
	for _, region := range regions[1:] {
		hole := make(Chunk, len(region))
		for i, p := range region {
			hole[i] = Cell{X: p.X + offsetX, Y: p.Y + offsetY}
		}
		holes = append(holes, hole)
	}
	return holes
}
