package memdoc

import (
	"fmt"

	"github.com/gogpu/glyphfix"
)

// Glyph is a named glyph with at most one master layer per master.
type Glyph struct {
	doc    *Document
	name   string
	export bool
	layers map[string]*Layer
	order  []*Layer
}

var _ glyphfix.Glyph = (*Glyph)(nil)

// Name implements glyphfix.Glyph.
func (g *Glyph) Name() string { return g.name }

// Exportable implements glyphfix.Glyph.
func (g *Glyph) Exportable() bool { return g.export }

// SetExportable changes the export flag.
func (g *Glyph) SetExportable(v bool) { g.export = v }

// Layer implements glyphfix.Glyph.
func (g *Glyph) Layer(masterID string) (glyphfix.Layer, bool) {
	l, ok := g.layers[masterID]
	if !ok {
		return nil, false
	}
	return l, true
}

// MasterLayer returns the concrete layer for a master.
func (g *Glyph) MasterLayer(masterID string) (*Layer, bool) {
	l, ok := g.layers[masterID]
	return l, ok
}

// Layers returns the glyph's layers in creation order.
func (g *Glyph) Layers() []*Layer {
	return append([]*Layer(nil), g.order...)
}

// AddLayer creates the glyph's layer for a master. An empty name marks a
// plain master layer.
func (g *Glyph) AddLayer(masterID, name string) (*Layer, error) {
	if _, ok := g.doc.master(masterID); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMaster, masterID)
	}
	if l, ok := g.layers[masterID]; ok {
		return l, nil
	}
	l := &Layer{doc: g.doc, glyph: g, id: g.name + "/" + masterID, master: masterID, name: name}
	g.layers[masterID] = l
	g.order = append(g.order, l)
	return l, nil
}

// Layer is one master drawing of a glyph.
type Layer struct {
	doc        *Document
	glyph      *Glyph
	id         string
	master     string
	name       string
	bounds     *glyphfix.Rect
	components []*Component
}

var _ glyphfix.Layer = (*Layer)(nil)

// ID implements glyphfix.Layer.
func (l *Layer) ID() string { return l.id }

// Name implements glyphfix.Layer.
func (l *Layer) Name() string { return l.name }

// GlyphName implements glyphfix.Layer.
func (l *Layer) GlyphName() string { return l.glyph.name }

// MasterID implements glyphfix.Layer.
func (l *Layer) MasterID() string { return l.master }

// Components implements glyphfix.Layer.
func (l *Layer) Components() []glyphfix.Component {
	out := make([]glyphfix.Component, 0, len(l.components))
	for _, c := range l.components {
		out = append(out, c)
	}
	return out
}

// Placed returns the concrete components in order.
func (l *Layer) Placed() []*Component {
	return append([]*Component(nil), l.components...)
}

// SetBounds records the layer's outline bounds. Components referencing
// this glyph use them as their base bounds.
func (l *Layer) SetBounds(r glyphfix.Rect) {
	l.bounds = &r
}

// Bounds returns the recorded outline bounds.
func (l *Layer) Bounds() (glyphfix.Rect, bool) {
	if l.bounds == nil {
		return glyphfix.Rect{}, false
	}
	return *l.bounds, true
}

// AddComponent places base in the layer with transform t.
func (l *Layer) AddComponent(base string, t glyphfix.Transform) *Component {
	c := &Component{layer: l, base: base, t: t}
	l.components = append(l.components, c)
	return c
}

// RemoveComponent detaches c from the layer. Later reads and writes
// through c fail with ErrDetached.
func (l *Layer) RemoveComponent(c *Component) bool {
	for i, cc := range l.components {
		if cc == c {
			l.components = append(l.components[:i], l.components[i+1:]...)
			c.layer = nil
			return true
		}
	}
	return false
}

func (l *Layer) indexOf(c *Component) int {
	for i, cc := range l.components {
		if cc == c {
			return i
		}
	}
	return -1
}

// Component is a placed reference to a base glyph.
type Component struct {
	layer *Layer
	base  string
	t     glyphfix.Transform
}

var _ glyphfix.Component = (*Component)(nil)

// BaseGlyph implements glyphfix.Component.
func (c *Component) BaseGlyph() string { return c.base }

// Transform implements glyphfix.Component.
func (c *Component) Transform() (glyphfix.Transform, error) {
	if c.layer == nil {
		return glyphfix.Transform{}, ErrDetached
	}
	if c.layer.doc.closed {
		return glyphfix.Transform{}, glyphfix.ErrHostUnavailable
	}
	return c.t, nil
}

// SetTransform implements glyphfix.Component. Writes made while an undo
// group is open are recorded in it; other writes form their own group.
func (c *Component) SetTransform(t glyphfix.Transform) error {
	if c.layer == nil {
		return ErrDetached
	}
	d := c.layer.doc
	if d.closed {
		return fmt.Errorf("memdoc: write /%s: %w", c.layer.glyph.name, glyphfix.ErrHostUnavailable)
	}
	d.record(c, c.t)
	c.t = t
	return nil
}
