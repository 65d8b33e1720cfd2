package glyphfix

// Status is the outcome of planning one defective component.
type Status int

const (
	// StatusPlanned means a correction op was produced.
	StatusPlanned Status = iota
	// StatusUnfixable means the component is defective but no safe
	// correction exists. It is left untouched.
	StatusUnfixable
	// StatusUnreadable means the component's transform or base bounds
	// could not be read.
	StatusUnreadable
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusUnfixable:
		return "unfixable"
	case StatusUnreadable:
		return "unreadable"
	default:
		return unknownStr
	}
}

// Finding describes one component that needs (or could not get) a fix.
type Finding struct {
	Layer     ScopedLayer
	Index     int
	Component Component
	BaseGlyph string

	Before Transform
	After  Transform
	Defect Defect

	// Flip and Delta are set for mirror corrections.
	Flip  Flip
	Delta Point

	Status Status
	Err    error
}

// CorrectionOp is a planned write: give Component the Transform.
type CorrectionOp struct {
	Layer     ScopedLayer
	Index     int
	Component Component
	Transform Transform
}

// Plan is the read-only result of a scan: every finding plus the ops that
// Apply would commit. Ops are fixed when the plan is built and are never
// re-derived while writing.
type Plan struct {
	Settings   Settings
	Scope      ScopeSet
	Components int
	Findings   []Finding
	Ops        []CorrectionOp
}

// Empty reports whether the plan has nothing to write.
func (p *Plan) Empty() bool { return len(p.Ops) == 0 }

// Defective returns the number of defective components found.
func (p *Plan) Defective() int {
	n := 0
	for _, f := range p.Findings {
		if f.Defect.Found {
			n++
		}
	}
	return n
}

// Unfixable returns the number of findings that produced no op.
func (p *Plan) Unfixable() int {
	return len(p.Findings) - len(p.Ops)
}

// Skipped returns the number of scanned components that needed no fix.
func (p *Plan) Skipped() int {
	return p.Components - len(p.Findings)
}

// planComponent runs detection and planning for one component. It returns
// false when the component is not defective.
func planComponent(mode Mode, codec TransformCodec, sl ScopedLayer, index int, c Component) (Finding, bool) {
	f := Finding{Layer: sl, Index: index, Component: c, BaseGlyph: c.BaseGlyph()}

	t, err := codec.Transform(c)
	if err != nil {
		f.Status, f.Err = StatusUnreadable, err
		return f, true
	}
	f.Before, f.After = t, t

	f.Defect = mode.detector().Detect(t)
	if !f.Defect.Found {
		return f, false
	}

	switch m := mode.(type) {
	case GridMode:
		f.After = planGrid(t, m)
	case MirrorMode:
		base, err := codec.BaseBounds(c, sl.MasterID)
		if err != nil {
			f.Status, f.Err = StatusUnreadable, err
			return f, true
		}
		cand, err := PlanMirror(t, base, m)
		if err != nil {
			f.Status, f.Err = StatusUnfixable, err
			return f, true
		}
		f.After, f.Flip, f.Delta = cand.Transform, cand.Flip, cand.Delta
	}
	return f, true
}

// planGrid snaps each defective translation axis; the linear part is kept.
func planGrid(t Transform, m GridMode) Transform {
	g := GridOffset{Step: m.Step, Tolerance: m.Tolerance}
	t.TX, _ = g.Snap(t.TX)
	t.TY, _ = g.Snap(t.TY)
	return t
}
