package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when an operation references an id that is not in the collection.
	ErrNotFound = errors.New("note not found")

	// ErrParse is returned when persisted data cannot be decoded by any accepted format.
	ErrParse = errors.New("cannot parse notes")

	// ErrSerialize is returned when the collection cannot be encoded.
	ErrSerialize = errors.New("cannot serialize notes")
)
