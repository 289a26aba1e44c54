package objecttree

import "errors"

var (
	// ErrObjectNotFound is returned when a system object ID does not exist.
	ErrObjectNotFound = errors.New("system object not found")

	// ErrInvalidObject is returned when required object fields are missing.
	ErrInvalidObject = errors.New("invalid system object")
)
