package glyphfix

import "math"

// DegenerateDeterminant is the magnitude below which a transform's linear
// part is treated as non-invertible. Such placements are never reported as
// mirrored because no flip can restore a usable orientation.
const DegenerateDeterminant = 1e-9

// Transform is the affine placement of a component inside a layer.
//
// It follows the host's row-vector convention:
//
//	x' = M11*x + M21*y + TX
//	y' = M12*x + M22*y + TY
//
// (M11, M12) is the image of the x basis vector and (M21, M22) the image of
// the y basis vector.
type Transform struct {
	M11, M12 float64
	M21, M22 float64
	TX, TY   float64
}

// Identity returns the identity placement.
func Identity() Transform {
	return Transform{M11: 1, M22: 1}
}

// Translate returns a pure translation.
func Translate(x, y float64) Transform {
	return Transform{M11: 1, M22: 1, TX: x, TY: y}
}

// Scale returns a scaling placement.
func Scale(x, y float64) Transform {
	return Transform{M11: x, M22: y}
}

// Rotate returns a rotation placement (angle in radians, counter-clockwise).
func Rotate(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{M11: cos, M12: sin, M21: -sin, M22: cos}
}

// FromSlice builds a Transform from the six-value host layout
// (m11, m12, m21, m22, tX, tY). It reports false when fewer than six values
// are given.
func FromSlice(v []float64) (Transform, bool) {
	if len(v) < 6 {
		return Transform{}, false
	}
	return Transform{M11: v[0], M12: v[1], M21: v[2], M22: v[3], TX: v[4], TY: v[5]}, true
}

// Values returns the six-value host layout.
func (t Transform) Values() [6]float64 {
	return [6]float64{t.M11, t.M12, t.M21, t.M22, t.TX, t.TY}
}

// Det returns the determinant of the linear part.
// Its sign encodes orientation: negative means the placement is mirrored.
func (t Transform) Det() float64 {
	return t.M11*t.M22 - t.M12*t.M21
}

// IsDegenerate reports whether the linear part is (nearly) non-invertible.
func (t Transform) IsDegenerate() bool {
	return math.Abs(t.Det()) <= DegenerateDeterminant
}

// IsMirrored reports whether the placement reflects its base outline.
// Degenerate placements are never mirrored.
func (t Transform) IsMirrored() bool {
	d := t.Det()
	return d < 0 && math.Abs(d) > DegenerateDeterminant
}

// IsFinite reports whether all six values are finite numbers.
func (t Transform) IsFinite() bool {
	for _, v := range t.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FlipVertical negates the y basis row (M21, M22), mirroring the base outline
// top to bottom in component space. Translation is kept.
func (t Transform) FlipVertical() Transform {
	t.M21, t.M22 = -t.M21, -t.M22
	return t
}

// FlipHorizontal negates the x basis row (M11, M12), mirroring the base
// outline left to right in component space. Translation is kept.
func (t Transform) FlipHorizontal() Transform {
	t.M11, t.M12 = -t.M11, -t.M12
	return t
}

// WithTranslation returns t with its translation replaced.
func (t Transform) WithTranslation(x, y float64) Transform {
	t.TX, t.TY = x, y
	return t
}

// Offset returns t with d added to its translation.
func (t Transform) Offset(d Point) Transform {
	t.TX += d.X
	t.TY += d.Y
	return t
}

// Multiply composes two placements: the result applies other first, then t.
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		M11: other.M11*t.M11 + other.M12*t.M21,
		M12: other.M11*t.M12 + other.M12*t.M22,
		M21: other.M21*t.M11 + other.M22*t.M21,
		M22: other.M21*t.M12 + other.M22*t.M22,
		TX:  other.TX*t.M11 + other.TY*t.M21 + t.TX,
		TY:  other.TX*t.M12 + other.TY*t.M22 + t.TY,
	}
}

// TransformPoint applies the placement to a point.
func (t Transform) TransformPoint(p Point) Point {
	return Point{
		X: t.M11*p.X + t.M21*p.Y + t.TX,
		Y: t.M12*p.X + t.M22*p.Y + t.TY,
	}
}

// TransformVector applies the linear part only.
func (t Transform) TransformVector(p Point) Point {
	return Point{
		X: t.M11*p.X + t.M21*p.Y,
		Y: t.M12*p.X + t.M22*p.Y,
	}
}

// TransformRect maps the four corners of r and returns their axis-aligned
// bounds.
func (t Transform) TransformRect(r Rect) Rect {
	corners := [4]Point{
		{r.MinX, r.MinY},
		{r.MinX, r.MaxY},
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
	}
	out := EmptyRect()
	for _, c := range corners {
		out = out.Extend(t.TransformPoint(c))
	}
	return out
}

// IsIdentity returns true if the placement is the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// IsTranslation returns true if the linear part is the identity.
func (t Transform) IsTranslation() bool {
	return t.M11 == 1 && t.M12 == 0 && t.M21 == 0 && t.M22 == 1
}

// ApproxEqual reports whether every value of t is within eps of other.
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	a, b := t.Values(), other.Values()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
