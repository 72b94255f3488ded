package dragdrop

import (
	"math"

	"github.com/bnema/sidebar/internal/application/port"
)

// ResolveCollision picks the drop target for a pointer. A target whose
// bounds contain the pointer wins, the smallest one when several nest.
// Otherwise the target with the closest center is used, among targets
// whose edge lies within radius of the pointer (radius <= 0 means
// unbounded). Targets with empty bounds
// are never candidates.
func ResolveCollision(cands []port.DropCandidate, x, y, radius float64) (port.DropCandidate, bool) {
	best := -1
	bestArea := math.Inf(1)
	for i, c := range cands {
		if !c.Rect.Contains(x, y) {
			continue
		}
		if area := c.Rect.W * c.Rect.H; area < bestArea {
			best, bestArea = i, area
		}
	}
	if best >= 0 {
		return cands[best], true
	}

	limit := math.Inf(1)
	if radius > 0 {
		limit = radius * radius
	}
	bestDist := math.Inf(1)
	for i, c := range cands {
		if c.Rect.Empty() {
			continue
		}
		if c.Rect.DistanceSq(x, y) > limit {
			continue
		}
		if d := c.Rect.CenterDistanceSq(x, y); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return port.DropCandidate{}, false
	}
	return cands[best], true
}

func findCandidate(cands []port.DropCandidate, key targetKey) (port.DropCandidate, bool) {
	for _, c := range cands {
		if keyOf(c.Target) == key {
			return c, true
		}
	}
	return port.DropCandidate{}, false
}
