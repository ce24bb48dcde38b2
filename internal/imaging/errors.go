package imaging

import "errors"

var (
	// ErrClipRange indicates clip thresholds outside [0,1] or clipBottom > clipTop.
	ErrClipRange = errors.New("imaging: clipBottom must be lower than clipTop, both within [0,1]")
	// ErrNoContext indicates an image that cannot be sampled (zero area).
	ErrNoContext = errors.New("imaging: no sampling context for image")
	// ErrUnknownChannel indicates an unsupported height channel name.
	ErrUnknownChannel = errors.New("imaging: unknown height channel")
)
