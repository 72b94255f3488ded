package port

import (
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
)

// DropCandidate is a mounted drop target together with its live bounds.
type DropCandidate struct {
	Target dnd.DropTarget
	Rect   entity.Rect
}

// DragSurface is the structural and geometric view of the rendered
// sidebar that the drag coordinator queries. Implementations answer from
// the current frame; nothing they return is cached across calls.
type DragSurface interface {
	// ZoneOf resolves the zone whose marker most closely encloses the element.
	ZoneOf(elementID string) (dnd.Zone, bool)

	// ElementRect returns the element's current bounds.
	ElementRect(elementID string) (entity.Rect, bool)

	// ItemFor builds the single-item payload for a draggable element.
	ItemFor(elementID string) (dnd.Item, bool)

	// DropTargets lists the currently mounted drop targets.
	DropTargets() []DropCandidate
}
