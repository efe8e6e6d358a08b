// Package geometry provides normalized image-space primitives shared by the
// assistance engine. All coordinates live in [0,1] with the origin at the
// top-left of the frame.
package geometry

// Point is a normalized position in the frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a normalized axis-aligned bounding box.
type Rect struct {
	X float64 `json:"x"` // Left edge
	Y float64 `json:"y"` // Top edge
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// LineSegment is a line between two normalized points.
type LineSegment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v into [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
