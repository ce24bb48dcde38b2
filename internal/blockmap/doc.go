// Package blockmap turns a binary pixel mask into traced polygons.
//
// This package is the raster half of the motif pipeline. It takes a strictly
// binary grid (0 = off, 1 = on), finds the 4-connected regions of on-cells,
// discovers the background regions each region fully encloses, and walks the
// boundary of any cell set into a minimal rectilinear polygon.
//
// # Pipeline
//
// The functions are meant to be chained, each consuming the previous output:
//
//  1. Label: row-major scan that assigns dense component ids (-1 = background)
//  2. Group: collects the cells of each id into a Chunk, in scan order
//  3. Holes: finds enclosed background regions of one Chunk
//  4. Trace: walks a Chunk (or a hole) into an ordered Shape
//
// # Coordinate System
//
// Cells use the image convention: (0,0) is the top-left cell, X increases
// rightward and Y increases downward. Shape vertices sit on cell corners, so a
// cell (x, y) spans the square (x, y)-(x+1, y+1). An optional offset insets the
// corners of a traced shape so that shapes traced from neighbouring cell sets
// never share an exact coordinate.
//
// # Label Ids
//
// Label ids are dense and stable: a merge of two provisional components keeps
// the smaller id and immediately renumbers every larger id down by one. Tests
// and callers depend on the exact ids, not just on the equivalence classes.
// The renumbering pass is linear in the cells scanned so far, which makes the
// worst case quadratic. That is fine for thresholded motif images (at most a
// few tens of thousands of cells) and is not meant as a general-purpose
// connected-component labeler.
//
// # Error Handling
//
// Degenerate input (an empty grid, a grid without on-cells, an empty chunk)
// produces empty results, never an error. The only errors are a grid whose
// data does not match its dimensions (ErrGridSize) and a boundary walk that
// fails to close within its iteration bound (ErrTraceNotClosed), which signals
// a broken invariant rather than bad input.
package blockmap
