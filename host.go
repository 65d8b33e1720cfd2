package glyphfix

// Document is the font document a run reads and mutates. Hosts implement it
// over their own glyph, layer and undo machinery; the engine never reaches a
// document through global state.
type Document interface {
	// SelectedLayers returns the layers currently selected by the operator.
	SelectedLayers() []Layer
	// Glyphs returns every glyph in document order.
	Glyphs() []Glyph
	// Masters returns every master in document order.
	Masters() []Master
	// CurrentMaster returns the master the operator is editing.
	CurrentMaster() (Master, bool)
	// BaseBounds returns the outline bounds of glyph for the given master,
	// in the glyph's own coordinate space.
	BaseBounds(glyph, masterID string) (Rect, error)

	// BeginUndoGroup opens a transaction that collapses every following
	// write into one undoable action. EndUndoGroup closes it.
	BeginUndoGroup(name string)
	EndUndoGroup()

	// SuspendRedraw stops incremental interface updates until ResumeRedraw.
	SuspendRedraw()
	ResumeRedraw()
	// Redraw requests one interface refresh.
	Redraw()
}

// Glyph is a named glyph with one layer per master.
type Glyph interface {
	Name() string
	Exportable() bool
	// Layer returns the glyph's layer for a master. Sparse masters report false.
	Layer(masterID string) (Layer, bool)
}

// Layer is one drawing of a glyph, usually tied to a master.
type Layer interface {
	// ID identifies the layer for deduplication.
	ID() string
	Name() string
	GlyphName() string
	// MasterID returns the associated master, or "" if the host has none.
	MasterID() string
	Components() []Component
}

// Component is a placed reference to a base glyph.
type Component interface {
	BaseGlyph() string
	Transform() (Transform, error)
	SetTransform(Transform) error
}

// Master is a named design variant.
type Master struct {
	ID   string
	Name string
}
