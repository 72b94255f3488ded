package dnd

import (
	"errors"
	"slices"
)

// ErrEmptySession is returned when a session would hold no items.
var ErrEmptySession = errors.New("drag session must contain at least one item")

// Session is the frozen payload of one drag gesture.
type Session struct {
	items []Item
}

// NewSession builds a session from one or more items.
func NewSession(items ...Item) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptySession
	}
	return &Session{items: slices.Clone(items)}, nil
}

// Items returns a copy of the items in drag order.
func (s *Session) Items() []Item {
	return slices.Clone(s.items)
}

// Len returns the number of dragged items.
func (s *Session) Len() int {
	return len(s.items)
}

// IsMulti reports whether this is a multi-selection drag.
func (s *Session) IsMulti() bool {
	return len(s.items) > 1
}

// Has reports whether any item supports f.
func (s *Session) Has(f Format) bool {
	return slices.ContainsFunc(s.items, func(it Item) bool { return it.Has(f) })
}

// ItemsWith returns the items supporting f, in drag order.
func (s *Session) ItemsWith(f Format) []Item {
	var out []Item
	for _, it := range s.items {
		if it.Has(f) {
			out = append(out, it)
		}
	}
	return out
}

// Contains reports whether an item read as f has the given id.
func (s *Session) Contains(f Format, id string) bool {
	if id == "" {
		return false
	}
	return slices.ContainsFunc(s.items, func(it Item) bool {
		return it.Has(f) && it.IDFor(f) == id
	})
}
