// Package entity defines domain entities for the sidebar.
package entity

// Rect is an element's bounds in surface coordinates.
// X and Y are the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether the rectangle has no usable area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive so adjacent rects never both match.
func (r Rect) Contains(x, y float64) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CenterDistanceSq returns the squared distance from the point to the center.
func (r Rect) CenterDistanceSq(x, y float64) float64 {
	cx, cy := r.Center()
	dx, dy := x-cx, y-cy
	return dx*dx + dy*dy
}

// DistanceSq returns the squared distance from the point to the nearest
// point of the rectangle; zero when the point is inside.
func (r Rect) DistanceSq(x, y float64) float64 {
	dx := max(r.X-x, 0, x-(r.X+r.W))
	dy := max(r.Y-y, 0, y-(r.Y+r.H))
	return dx*dx + dy*dy
}
