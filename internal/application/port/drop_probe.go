package port

import "github.com/bnema/sidebar/internal/domain/entity"

// ProbeKind classifies what sits under a point in the tab list.
type ProbeKind int

const (
	ProbeNothing ProbeKind = iota
	ProbeGroupHeader
	ProbeTab
)

// ProbeHit is the element found under a point.
type ProbeHit struct {
	Kind     ProbeKind
	ID       string
	Rect     entity.Rect
	Expanded bool   // group header only
	Expand   func() // group header only
}

// DropProbe answers coordinate queries for drags that come from outside
// the application and therefore carry no item identity.
type DropProbe interface {
	// ProbeAt returns the tab or group header under the point.
	ProbeAt(x, y float64) ProbeHit

	// Bounds returns the bounds of the whole monitored container.
	Bounds() entity.Rect
}
