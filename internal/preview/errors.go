package preview

import "errors"

var (
	// ErrEmpty indicates a canvas with no pixels.
	ErrEmpty = errors.New("preview: empty canvas")
	// ErrTooLarge indicates a canvas above MaxPixels.
	ErrTooLarge = errors.New("preview: canvas too large")
)
