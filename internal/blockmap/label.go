package blockmap

// Background is the label of an off-cell.
const Background = -1

// LabelArray holds one component id per grid cell, row-major.
// Background cells carry -1; component ids are dense and start at 0.
type LabelArray []int

// Label assigns a component id to every on-cell of the grid.
//
// Cells are scanned in row-major order. Only the already-visited left and top
// neighbours are inspected, so components are 4-connected. When both
// neighbours carry different ids the cell joins two provisional components:
// it takes the smaller id, every cell scanned so far that carried the larger
// id is renamed to the smaller one, and every id above the removed one is
// decremented so the id space stays dense.
//
// An empty grid yields an empty LabelArray; a grid without on-cells yields all
// Background.
//
// Time: O(W·H) without merges, O(W·H) extra per merge.
func Label(g *Grid) LabelArray {
	labels := make(LabelArray, 0, len(g.Cells))
	current := Background

	for i, v := range g.Cells {
		if v == 0 {
			labels = append(labels, Background)
			continue
		}
		x, y := i%g.Width, i/g.Width
		left := labels.visited(x-1, y, g.Width)
		top := labels.visited(x, y-1, g.Width)

		switch {
		case left != Background && top != Background && left != top:
			removed, joined := max(left, top), min(left, top)
			labels = append(labels, joined)
			current--
			labels.merge(removed, joined)
		case left != Background:
			labels = append(labels, left)
		case top != Background:
			labels = append(labels, top)
		default:
			current++
			labels = append(labels, current)
		}
	}

	return labels
}

// visited returns the label at (x, y) if that cell has already been scanned,
// Background otherwise.
func (l LabelArray) visited(x, y, width int) int {
	if x < 0 || y < 0 || x >= width {
		return Background
	}
	i := y*width + x
	if i >= len(l) {
		return Background
	}
	return l[i]
}

// merge renames removed to joined and closes the gap left by removed.
func (l LabelArray) merge(removed, joined int) {
	for i, id := range l {
		switch {
		case id == removed:
			l[i] = joined
		case id > removed:
			l[i] = id - 1
		}
	}
}

// Count returns the number of distinct component ids.
func (l LabelArray) Count() int {
	n := 0
	for _, id := range l {
		if id+1 > n {
			n = id + 1
		}
	}
	return n
}

// Mask converts the labels back into a binary grid of the given width.
// Labelling the returned grid reproduces l exactly.
func (l LabelArray) Mask(width int) *Grid {
	cells := make([]uint8, len(l))
	for i, id := range l {
		if id != Background {
			cells[i] = 1
		}
	}
	height := 0
	if width > 0 {
		height = len(l) / width
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}
