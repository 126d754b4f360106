package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an optimistic concurrency check
	// fails or a natural-key uniqueness constraint fires
	ErrConflict = errors.New("conflict: timecard was modified concurrently")
)
