package glyphfix

import "fmt"

// TransformCodec is the single capability the engine uses to read and write
// component placement. Every method either succeeds or returns an error;
// there are no fallbacks.
type TransformCodec interface {
	// Transform reads the component's six-value placement.
	Transform(c Component) (Transform, error)
	// SetTransform commits a new placement.
	SetTransform(c Component, t Transform) error
	// BaseBounds returns the outline bounds of the component's base glyph
	// for a master, before the component's own transform.
	BaseBounds(c Component, masterID string) (Rect, error)
}

// HostCodec is the default codec: it talks to the document and its
// components directly and rejects non-finite values in both directions.
type HostCodec struct {
	Doc Document
}

// NewHostCodec returns a codec bound to doc.
func NewHostCodec(doc Document) *HostCodec {
	return &HostCodec{Doc: doc}
}

// Transform implements TransformCodec.
func (h *HostCodec) Transform(c Component) (Transform, error) {
	t, err := c.Transform()
	if err != nil {
		return Transform{}, fmt.Errorf("glyphfix: read transform of %q: %w", c.BaseGlyph(), err)
	}
	if !t.IsFinite() {
		return Transform{}, fmt.Errorf("glyphfix: read transform of %q: %w", c.BaseGlyph(), ErrNonFiniteTransform)
	}
	return t, nil
}

// SetTransform implements TransformCodec.
func (h *HostCodec) SetTransform(c Component, t Transform) error {
	if !t.IsFinite() {
		return ErrNonFiniteTransform
	}
	return c.SetTransform(t)
}

// BaseBounds implements TransformCodec.
func (h *HostCodec) BaseBounds(c Component, masterID string) (Rect, error) {
	if masterID == "" {
		return Rect{}, fmt.Errorf("glyphfix: bounds of %q: layer has no master", c.BaseGlyph())
	}
	r, err := h.Doc.BaseBounds(c.BaseGlyph(), masterID)
	if err != nil {
		return Rect{}, fmt.Errorf("glyphfix: bounds of %q: %w", c.BaseGlyph(), err)
	}
	if r.IsEmpty() || r.Width() == 0 || r.Height() == 0 {
		return Rect{}, fmt.Errorf("glyphfix: bounds of %q: base outline is empty", c.BaseGlyph())
	}
	return r, nil
}
