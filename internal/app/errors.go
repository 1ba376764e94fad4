package app

import "errors"

// ErrNotFound and related errors describe runtime failures surfaced to adapters.
var (
	ErrNotFound = errors.New("not found")
)
