package glyphfix

import "math"

// Rect is an axis-aligned bounding box in layer space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// R is a convenience function to create a Rect from its corners.
func R(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// EmptyRect returns an inverted rectangle that any Extend call replaces.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether r encloses no point.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Extend grows r to include p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// BottomLeft returns (MinX, MinY).
func (r Rect) BottomLeft() Point {
	return Point{X: r.MinX, Y: r.MinY}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) * 0.5, Y: (r.MinY + r.MaxY) * 0.5}
}

// Anchor returns the reference point selected by a.
func (r Rect) Anchor(a Anchor) Point {
	if a == AnchorCenter {
		return r.Center()
	}
	return r.BottomLeft()
}
