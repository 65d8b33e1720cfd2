package glyphfix

// ScopedLayer is one layer a run scans, with the glyph and master it belongs to.
type ScopedLayer struct {
	Layer     Layer
	GlyphName string
	// MasterID is the master used to look up base glyph bounds. It may be
	// empty when the host cannot tell which master a selected layer uses.
	MasterID string
}

// DisplayName returns the layer name, or "(master)" for unnamed master layers.
func (l ScopedLayer) DisplayName() string {
	if n := l.Layer.Name(); n != "" {
		return n
	}
	return "(master)"
}

// ScopeSet is the ordered, deduplicated list of layers for one run. It is
// recomputed on every call because the document may have changed.
type ScopeSet struct {
	Layers  []ScopedLayer
	Masters []Master
}

// Len returns the number of layers in the set.
func (s ScopeSet) Len() int { return len(s.Layers) }

// ResolveScope expands the scope and master selectors into layers.
//
// Selected layers keep selection order. Glyph scopes are ordered by glyph
// (document order), then master (document order); glyphs without a layer
// for a master are skipped. An empty result is a UserInputError naming the
// condition that was not met.
func ResolveScope(doc Document, scope Scope, masters MasterScope) (ScopeSet, error) {
	if doc == nil {
		return ScopeSet{}, &UserInputError{Reason: "no document open", Err: ErrNoDocument}
	}

	var current string
	if m, ok := doc.CurrentMaster(); ok {
		current = m.ID
	}

	if scope == ScopeSelectedLayers {
		return resolveSelectedLayers(doc, current)
	}

	ms := resolveMasters(doc, masters)
	if len(ms) == 0 {
		return ScopeSet{}, &UserInputError{Field: "masters", Reason: "no masters found"}
	}

	var glyphs []Glyph
	switch scope {
	case ScopeSelectedGlyphs:
		glyphs = selectedGlyphs(doc)
		if len(glyphs) == 0 {
			return ScopeSet{}, &UserInputError{Field: "scope", Reason: "no selected glyphs found"}
		}
	case ScopeAllExportable:
		glyphs = exportableGlyphs(doc)
		if len(glyphs) == 0 {
			return ScopeSet{}, &UserInputError{Field: "scope", Reason: "no exportable glyphs found"}
		}
	default:
		return ScopeSet{}, &UserInputError{Field: "scope", Reason: "unknown scope " + scope.String()}
	}

	set := ScopeSet{Masters: ms}
	seen := make(map[string]struct{})
	for _, g := range glyphs {
		for _, m := range ms {
			l, ok := g.Layer(m.ID)
			if !ok || l == nil {
				continue
			}
			if _, dup := seen[l.ID()]; dup {
				continue
			}
			seen[l.ID()] = struct{}{}
			set.Layers = append(set.Layers, ScopedLayer{Layer: l, GlyphName: g.Name(), MasterID: m.ID})
		}
	}
	if len(set.Layers) == 0 {
		return ScopeSet{}, &UserInputError{Field: "scope", Reason: "no layers found for the chosen scope"}
	}
	return set, nil
}

func resolveSelectedLayers(doc Document, current string) (ScopeSet, error) {
	sel := doc.SelectedLayers()
	set := ScopeSet{}
	seen := make(map[string]struct{}, len(sel))
	masterSeen := make(map[string]struct{})
	for _, l := range sel {
		if l == nil {
			continue
		}
		if _, dup := seen[l.ID()]; dup {
			continue
		}
		seen[l.ID()] = struct{}{}

		mid := l.MasterID()
		if mid == "" {
			mid = current
		}
		set.Layers = append(set.Layers, ScopedLayer{Layer: l, GlyphName: l.GlyphName(), MasterID: mid})
		if mid != "" {
			masterSeen[mid] = struct{}{}
		}
	}
	if len(set.Layers) == 0 {
		return ScopeSet{}, &UserInputError{Field: "scope", Reason: "select one or more layers first"}
	}
	for _, m := range doc.Masters() {
		if _, ok := masterSeen[m.ID]; ok {
			set.Masters = append(set.Masters, m)
		}
	}
	return set, nil
}

func resolveMasters(doc Document, scope MasterScope) []Master {
	if scope == MasterAll {
		return doc.Masters()
	}
	if m, ok := doc.CurrentMaster(); ok {
		return []Master{m}
	}
	return nil
}

// selectedGlyphs returns the glyphs owning the selected layers, in document order.
func selectedGlyphs(doc Document) []Glyph {
	names := make(map[string]struct{})
	for _, l := range doc.SelectedLayers() {
		if l != nil {
			names[l.GlyphName()] = struct{}{}
		}
	}
	if len(names) == 0 {
		return nil
	}
	var out []Glyph
	for _, g := range doc.Glyphs() {
		if _, ok := names[g.Name()]; ok {
			out = append(out, g)
			delete(names, g.Name())
		}
	}
	return out
}

func exportableGlyphs(doc Document) []Glyph {
	var out []Glyph
	for _, g := range doc.Glyphs() {
		if g != nil && g.Exportable() {
			out = append(out, g)
		}
	}
	return out
}
