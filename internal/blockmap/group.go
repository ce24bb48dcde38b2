package blockmap

// Chunk is the ordered cell list of one component.
// Cells appear in row-major scan order; Trace seeds its walk from Chunk[0].
type Chunk []Cell

// Group collects the cells of each component id into a Chunk.
//
// The returned slice is indexed by id: result[0] holds the cells labelled 0,
// and so on. Background cells belong to no chunk. Within each chunk the
// cells keep the row-major order of the labels.
func Group(labels LabelArray, width int) []Chunk {
	var chunks []Chunk
	for i, id := range labels {
		if id == Background {
			continue
		}
		for id >= len(chunks) {
			chunks = append(chunks, nil)
		}
		chunks[id] = append(chunks[id], Cell{X: i % width, Y: i / width})
	}
	return chunks
}

// Bounds returns the inclusive bounding box of the chunk.
// ok is false for an empty chunk.
func (c Chunk) Bounds() (lo, hi Cell, ok bool) {
	if len(c) == 0 {
		return Cell{}, Cell{}, false
	}
	lo, hi = c[0], c[0]
	for _, p := range c[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi, true
}

// Set returns the chunk's cells as a lookup set.
func (c Chunk) Set() map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(c))
	for _, p := range c {
		set[p] = struct{}{}
	}
	return set
}
