package multibuffer

import "errors"

// Errors returned by multibuffer operations.
var (
	// ErrExcerptNotFound indicates an anchor's excerpt no longer exists
	// in the snapshot, so its position cannot be determined.
	ErrExcerptNotFound = errors.New("excerpt not found")
)
