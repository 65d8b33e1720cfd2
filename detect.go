package glyphfix

import "math"

// DefectKind identifies what a Detector looks for.
type DefectKind int

const (
	// DefectGridOffset is a translation that is not on the grid.
	DefectGridOffset DefectKind = iota
	// DefectMirror is a reflected linear part (negative determinant).
	DefectMirror
)

// String returns the string representation of the defect kind.
func (k DefectKind) String() string {
	switch k {
	case DefectGridOffset:
		return "off-grid"
	case DefectMirror:
		return "mirrored"
	default:
		return unknownStr
	}
}

// Axis is a set of translation axes.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
)

// Has reports whether a contains every axis in b.
func (a Axis) Has(b Axis) bool { return a&b == b }

// Defect is the verdict of a Detector for one transform.
type Defect struct {
	Kind DefectKind
	// Axes lists the off-grid axes. Only set for DefectGridOffset.
	Axes Axis
	// Found is true when the transform needs correcting.
	Found bool
}

// Detector decides whether a placement is defective.
type Detector interface {
	Kind() DefectKind
	Detect(t Transform) Defect
}

// GridOffset flags translations that are off a grid of Step units.
//
// Each axis is judged on its own. With Tolerance == 0 every off-grid value
// is flagged; with Tolerance > 0 only values within ±Tolerance of their
// nearest gridline are, so placements far from any gridline stay put.
type GridOffset struct {
	Step      float64
	Tolerance float64
}

// Kind implements Detector.
func (GridOffset) Kind() DefectKind { return DefectGridOffset }

// Nearest returns the gridline closest to v, rounding halves away from zero.
func (g GridOffset) Nearest(v float64) float64 {
	return math.Round(v/g.Step) * g.Step
}

// Snap returns the value v should take and whether it is defective.
func (g GridOffset) Snap(v float64) (float64, bool) {
	if !(g.Step > 0) {
		return v, false
	}
	nearest := g.Nearest(v)
	if nearest == v {
		return v, false
	}
	if g.Tolerance == 0 || math.Abs(nearest-v) <= g.Tolerance {
		return nearest, true
	}
	return v, false
}

// Detect implements Detector.
func (g GridOffset) Detect(t Transform) Defect {
	d := Defect{Kind: DefectGridOffset}
	if _, ok := g.Snap(t.TX); ok {
		d.Axes |= AxisX
	}
	if _, ok := g.Snap(t.TY); ok {
		d.Axes |= AxisY
	}
	d.Found = d.Axes != 0
	return d
}

// MirrorReflection flags placements whose determinant is negative.
// Degenerate placements (|det| <= DegenerateDeterminant) are never flagged.
type MirrorReflection struct{}

// Kind implements Detector.
func (MirrorReflection) Kind() DefectKind { return DefectMirror }

// Detect implements Detector.
func (MirrorReflection) Detect(t Transform) Defect {
	return Defect{Kind: DefectMirror, Found: t.IsMirrored()}
}
