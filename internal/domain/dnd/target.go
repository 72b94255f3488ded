package dnd

import "github.com/bnema/sidebar/internal/domain/entity"

// TargetKind names what a drop target is, so handlers can interpret
// TargetID without parsing it.
type TargetKind string

const (
	KindTab        TargetKind = "tab"
	KindTabGroup   TargetKind = "tab-group"
	KindBookmark   TargetKind = "bookmark"
	KindFolder     TargetKind = "folder"
	KindPinnedSite TargetKind = "pinned-site"
	KindSpace      TargetKind = "space"
	KindZoneEnd    TargetKind = "zone-end" // empty area after the last item
)

// DropTarget describes one droppable surface. Targets are rebuilt on
// every render and never cached across frames.
type DropTarget struct {
	Zone     Zone
	TargetID string
	Kind     TargetKind
	Accept   Acceptor

	IsContainer  bool
	IsHorizontal bool
	IsExpanded   bool

	// ContainerFor overrides IsContainer per format, for targets that hold
	// some formats and only reorder against others.
	ContainerFor func(Format) bool

	// InsideOnly makes every position over the target resolve to into
	// for the formats it accepts, for targets that hold a format but
	// cannot be reordered against it.
	InsideOnly func(Format) bool

	// Expand opens a collapsed container; used by hover-to-expand.
	Expand func()
}

// Accepts runs negotiation for this target.
func (t DropTarget) Accepts(s *Session) (Format, bool) {
	if t.Accept == nil {
		return "", false
	}
	return t.Accept(s)
}

// IsContainerFor reports whether f can be dropped inside this target.
func (t DropTarget) IsContainerFor(f Format) bool {
	if t.ContainerFor != nil {
		return t.ContainerFor(f)
	}
	return t.IsContainer
}

// Position computes the drop position for an accepted format. An
// expanded container turns after into into-first, since its children are
// visible directly below it.
func (t DropTarget) Position(g Geometry, rect entity.Rect, x, y float64, f Format) Position {
	container := t.IsContainerFor(f)
	pos := g.Calculate(rect, x, y, container, t.IsHorizontal)
	if pos != PositionNone && t.InsideOnly != nil && t.InsideOnly(f) {
		return PositionInto
	}
	if pos == PositionAfter && container && t.IsExpanded {
		return PositionIntoFirst
	}
	return pos
}

// WantsExpand reports whether hovering at pos should arm hover-to-expand.
func (t DropTarget) WantsExpand(pos Position, f Format) bool {
	return pos == PositionInto && t.IsContainerFor(f) && !t.IsExpanded && t.Expand != nil
}
