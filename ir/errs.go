package ir

import "errors"

var (
	// ErrNotFound reports a path whose target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch reports a path whose target exists with a kind
	// the requested operation cannot apply to.
	ErrTypeMismatch = errors.New("type mismatch")
)
