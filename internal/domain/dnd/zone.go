package dnd

import (
	"errors"
	"fmt"
)

// Zone is one of the fixed drop surfaces of the sidebar.
type Zone string

const (
	ZonePinned    Zone = "pinned"
	ZoneSpaces    Zone = "spaces"
	ZoneTabs      Zone = "tabs"
	ZoneBookmarks Zone = "bookmarks"
)

// Zones lists every zone in sidebar order.
var Zones = []Zone{ZonePinned, ZoneSpaces, ZoneTabs, ZoneBookmarks}

// ErrUnknownZone is returned for a zone outside the closed set.
var ErrUnknownZone = errors.New("unknown zone")

// Valid reports whether z is one of the known zones.
func (z Zone) Valid() bool {
	switch z {
	case ZonePinned, ZoneSpaces, ZoneTabs, ZoneBookmarks:
		return true
	}
	return false
}

// ParseZone converts a zone name.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownZone)
	}
	return z, nil
}
