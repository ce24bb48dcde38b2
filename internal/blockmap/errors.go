package blockmap

import "errors"

var (
	// ErrGridSize indicates the cell data does not match width*height.
	ErrGridSize = errors.New("blockmap: cell count does not match grid dimensions")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("blockmap: all rows must have the same length")
	// ErrNonBinary indicates a cell value other than 0 or 1.
	ErrNonBinary = errors.New("blockmap: cell values must be 0 or 1")
	// ErrTraceNotClosed indicates a boundary walk exceeded its iteration bound.
	ErrTraceNotClosed = errors.New("blockmap: contour did not close")
)
