package timecard

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates no timecard exists for the natural key.
	ErrNotFound = errors.New("timecard not found")
	// ErrInvalidState indicates an operation attempted from a
	// disallowed lifecycle status.
	ErrInvalidState = errors.New("invalid timecard state")
)

// ValidationError reports one human-readable message per violated rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}
