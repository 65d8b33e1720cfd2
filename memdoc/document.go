package memdoc

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphfix"
)

// Sentinel errors for memdoc.
var (
	// ErrDetached is returned for components removed from their layer.
	ErrDetached = errors.New("memdoc: component is no longer in a layer")

	// ErrNoBounds is returned when neither the layer nor the bounds source
	// knows a glyph's outline bounds.
	ErrNoBounds = errors.New("memdoc: no outline bounds")

	// ErrUnknownMaster is returned when a layer names a master the document
	// does not have.
	ErrUnknownMaster = errors.New("memdoc: unknown master")
)

// BoundsSource supplies base glyph outline bounds per master.
type BoundsSource interface {
	GlyphBounds(glyph, masterID string) (glyphfix.Rect, error)
}

// Document is an in-memory font document.
// It is not safe for concurrent use.
type Document struct {
	masters   []glyphfix.Master
	glyphs    []*Glyph
	byName    map[string]*Glyph
	current   string
	selection []*Layer
	bounds    BoundsSource
	closed    bool

	undo      []*undoGroup
	open      *undoGroup
	openDepth int

	suspended int
	redraws   int
}

var _ glyphfix.Document = (*Document)(nil)

// New creates an empty document.
func New() *Document {
	return &Document{byName: make(map[string]*Glyph)}
}

// AddMaster appends a master. The first master becomes current.
func (d *Document) AddMaster(id, name string) glyphfix.Master {
	m := glyphfix.Master{ID: id, Name: name}
	d.masters = append(d.masters, m)
	if d.current == "" {
		d.current = id
	}
	return m
}

// SetCurrentMaster selects the master the operator is editing.
func (d *Document) SetCurrentMaster(id string) error {
	if _, ok := d.master(id); !ok {
		return fmt.Errorf("%w %q", ErrUnknownMaster, id)
	}
	d.current = id
	return nil
}

func (d *Document) master(id string) (glyphfix.Master, bool) {
	for _, m := range d.masters {
		if m.ID == id {
			return m, true
		}
	}
	return glyphfix.Master{}, false
}

// AddGlyph appends a glyph, or returns the existing glyph with that name.
func (d *Document) AddGlyph(name string, exportable bool) *Glyph {
	if g, ok := d.byName[name]; ok {
		return g
	}
	g := &Glyph{doc: d, name: name, export: exportable, layers: make(map[string]*Layer)}
	d.glyphs = append(d.glyphs, g)
	d.byName[name] = g
	return g
}

// Glyph returns the glyph with the given name.
func (d *Document) Glyph(name string) (*Glyph, bool) {
	g, ok := d.byName[name]
	return g, ok
}

// Select replaces the layer selection.
func (d *Document) Select(layers ...*Layer) {
	d.selection = append(d.selection[:0], layers...)
}

// SetBoundsSource attaches a fallback source of base glyph bounds.
func (d *Document) SetBoundsSource(src BoundsSource) {
	d.bounds = src
}

// Close marks the document as gone. Reads of bounds and every write fail
// with glyphfix.ErrHostUnavailable afterwards.
func (d *Document) Close() {
	d.closed = true
}

// Closed reports whether Close was called.
func (d *Document) Closed() bool { return d.closed }

// SelectedLayers implements glyphfix.Document.
func (d *Document) SelectedLayers() []glyphfix.Layer {
	if d.closed {
		return nil
	}
	out := make([]glyphfix.Layer, 0, len(d.selection))
	for _, l := range d.selection {
		out = append(out, l)
	}
	return out
}

// Glyphs implements glyphfix.Document.
func (d *Document) Glyphs() []glyphfix.Glyph {
	if d.closed {
		return nil
	}
	out := make([]glyphfix.Glyph, 0, len(d.glyphs))
	for _, g := range d.glyphs {
		out = append(out, g)
	}
	return out
}

// Masters implements glyphfix.Document.
func (d *Document) Masters() []glyphfix.Master {
	if d.closed {
		return nil
	}
	return append([]glyphfix.Master(nil), d.masters...)
}

// CurrentMaster implements glyphfix.Document.
func (d *Document) CurrentMaster() (glyphfix.Master, bool) {
	if d.closed {
		return glyphfix.Master{}, false
	}
	return d.master(d.current)
}

// BaseBounds implements glyphfix.Document.
func (d *Document) BaseBounds(glyph, masterID string) (glyphfix.Rect, error) {
	if d.closed {
		return glyphfix.Rect{}, glyphfix.ErrHostUnavailable
	}
	if g, ok := d.byName[glyph]; ok {
		if l, ok := g.layers[masterID]; ok && l.bounds != nil {
			return *l.bounds, nil
		}
	}
	if d.bounds != nil {
		return d.bounds.GlyphBounds(glyph, masterID)
	}
	return glyphfix.Rect{}, fmt.Errorf("%w for /%s in master %q", ErrNoBounds, glyph, masterID)
}

// SuspendRedraw implements glyphfix.Document.
func (d *Document) SuspendRedraw() { d.suspended++ }

// ResumeRedraw implements glyphfix.Document.
func (d *Document) ResumeRedraw() {
	if d.suspended > 0 {
		d.suspended--
	}
}

// Redraw implements glyphfix.Document.
func (d *Document) Redraw() { d.redraws++ }

// RedrawSuspended reports whether a SuspendRedraw is still outstanding.
func (d *Document) RedrawSuspended() bool { return d.suspended > 0 }

// Redraws returns how many redraws were requested.
func (d *Document) Redraws() int { return d.redraws }
