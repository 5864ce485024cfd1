// pkg/physics/collision.go
package physics

// Rect is an axis-aligned bounding box anchored at its top-left corner
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectAt builds a box of the given size with its top-left corner at pos
func RectAt(pos Vector2D, width, height float64) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Position returns the top-left corner
func (r Rect) Position() Vector2D {
	return Vector2D{X: r.X, Y: r.Y}
}

// Overlaps reports whether two boxes intersect using the separating axis
// test. Boxes that only share an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
