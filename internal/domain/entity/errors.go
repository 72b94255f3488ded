package entity

import "errors"

var (
	// ErrNotFound is returned when an item does not exist in its collection.
	ErrNotFound = errors.New("not found")
	// ErrCycle is returned when a folder would be moved inside itself.
	ErrCycle = errors.New("folder cannot contain itself")
	// ErrNotFolder is returned when a child is inserted under a leaf bookmark.
	ErrNotFolder = errors.New("parent is not a folder")
)
