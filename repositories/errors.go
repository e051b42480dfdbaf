package repositories

import "errors"

var (
	// ErrNotFound is returned when no document matches the (owner scoped) filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)
