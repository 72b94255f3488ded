package usecase

import (
	"errors"
	"slices"

	"github.com/bnema/sidebar/internal/domain/dnd"
)

// ErrUnsupportedDrop is returned when a handler receives a format or
// position it does not realize for the given target.
var ErrUnsupportedDrop = errors.New("unsupported drop")

// SelectionReader is the multi-selection a zone component owns.
type SelectionReader interface {
	Contains(id string) bool
	IDs() []string
}

// ZoneEndTarget is the empty area after the last element of a zone.
// Drops there append to the zone.
func ZoneEndTarget(zone dnd.Zone, accept dnd.Acceptor) dnd.DropTarget {
	return dnd.DropTarget{
		Zone:     zone,
		TargetID: string(dnd.KindZoneEnd),
		Kind:     dnd.KindZoneEnd,
		Accept:   accept,
	}
}

// countWithout returns len(order) minus the ids in moving.
func countWithout[K comparable](order []K, moving []K) int {
	n := 0
	for _, id := range order {
		if !slices.Contains(moving, id) {
			n++
		}
	}
	return n
}

func isAfter(pos dnd.Position) bool {
	return pos == dnd.PositionAfter
}

// sessionURLs returns the url payloads of the session in drag order.
func sessionURLs(s *dnd.Session) []dnd.URLData {
	var out []dnd.URLData
	for _, it := range s.ItemsWith(dnd.FormatURL) {
		if it.URL != nil && it.URL.URL != "" {
			out = append(out, *it.URL)
		}
	}
	return out
}
