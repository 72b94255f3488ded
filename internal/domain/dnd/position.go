package dnd

import (
	"math"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// Position is where a drop lands relative to the hovered target.
type Position int

const (
	PositionNone Position = iota
	PositionBefore
	PositionAfter
	PositionInto
	PositionIntoFirst
)

func (p Position) String() string {
	switch p {
	case PositionBefore:
		return "before"
	case PositionAfter:
		return "after"
	case PositionInto:
		return "into"
	case PositionIntoFirst:
		return "into-first"
	default:
		return "none"
	}
}

// IsInside reports whether the drop lands inside a container.
func (p Position) IsInside() bool {
	return p == PositionInto || p == PositionIntoFirst
}

// Geometry holds the zone ratios used to split a target.
type Geometry struct {
	// EdgeRatio is the share of a container's span, at each end, that
	// yields before/after. The middle yields into.
	EdgeRatio float64
	// LeafSplit is where a leaf target switches from before to after.
	LeafSplit float64
}

// DefaultGeometry splits containers 25/50/25 and leaves at the midpoint.
var DefaultGeometry = Geometry{EdgeRatio: 0.25, LeafSplit: 0.5}

// CalculatePosition maps a pointer to a drop position using DefaultGeometry.
func CalculatePosition(rect entity.Rect, x, y float64, isContainer, isHorizontal bool) Position {
	return DefaultGeometry.Calculate(rect, x, y, isContainer, isHorizontal)
}

// Calculate maps a pointer to a drop position. Horizontal surfaces use
// the X offset over width, vertical ones the Y offset over height.
// Boundary values resolve to the later zone: a container's exact
// EdgeRatio is into, its exact 1-EdgeRatio is after, and a leaf's exact
// LeafSplit is after.
func (g Geometry) Calculate(rect entity.Rect, x, y float64, isContainer, isHorizontal bool) Position {
	if rect.Empty() {
		return PositionNone
	}
	var ratio float64
	if isHorizontal {
		ratio = (x - rect.X) / rect.W
	} else {
		ratio = (y - rect.Y) / rect.H
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return PositionNone
	}

	if !isContainer {
		if ratio < g.LeafSplit {
			return PositionBefore
		}
		return PositionAfter
	}
	switch {
	case ratio < g.EdgeRatio:
		return PositionBefore
	case ratio >= 1-g.EdgeRatio:
		return PositionAfter
	default:
		return PositionInto
	}
}
