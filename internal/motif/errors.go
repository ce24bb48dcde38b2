package motif

import "errors"

var (
	// ErrSuperseded is the reply of a job replaced by a newer submission
	// under the same key. Its result, if any, is discarded.
	ErrSuperseded = errors.New("motif: request superseded")
	// ErrInvalidOptions indicates options that fail validation.
	ErrInvalidOptions = errors.New("motif: invalid options")
	// ErrDispatcherClosed is the reply to a submission after Close.
	ErrDispatcherClosed = errors.New("motif: dispatcher closed")
)
