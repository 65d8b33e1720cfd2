package glyphfix_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/memdoc"
)

func layerIDs(set glyphfix.ScopeSet) []string {
	ids := make([]string, 0, set.Len())
	for _, l := range set.Layers {
		ids = append(ids, l.Layer.ID())
	}
	return ids
}

func TestResolveScope(t *testing.T) {
	f := newFixture(t)
	bM2, _ := mustGlyph(t, f.doc, "B").MasterLayer("m2")

	tests := []struct {
		name    string
		setup   func()
		scope   glyphfix.Scope
		masters glyphfix.MasterScope
		want    []string
	}{
		{
			name:    "all exportable, all masters, sparse D skipped",
			scope:   glyphfix.ScopeAllExportable,
			masters: glyphfix.MasterAll,
			want:    []string{"A/m1", "A/m2", "B/m1", "B/m2", "D/m1"},
		},
		{
			name:    "all exportable, current master",
			setup:   func() { _ = f.doc.SetCurrentMaster("m2") },
			scope:   glyphfix.ScopeAllExportable,
			masters: glyphfix.MasterCurrent,
			want:    []string{"A/m2", "B/m2"},
		},
		{
			name:    "selected glyphs follow document order",
			setup:   func() { f.doc.Select(f.dM1, bM2, f.aM2, f.aM1) },
			scope:   glyphfix.ScopeSelectedGlyphs,
			masters: glyphfix.MasterAll,
			want:    []string{"A/m1", "A/m2", "B/m1", "B/m2", "D/m1"},
		},
		{
			name:    "selected layers keep selection order and dedupe",
			setup:   func() { f.doc.Select(f.dM1, f.aM1, f.dM1) },
			scope:   glyphfix.ScopeSelectedLayers,
			masters: glyphfix.MasterCurrent,
			want:    []string{"D/m1", "A/m1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = f.doc.SetCurrentMaster("m1")
			if tt.setup != nil {
				tt.setup()
			}
			set, err := glyphfix.ResolveScope(f.doc, tt.scope, tt.masters)
			if err != nil {
				t.Fatalf("ResolveScope() error = %v", err)
			}
			if got := strings.Join(layerIDs(set), " "); got != strings.Join(tt.want, " ") {
				t.Errorf("layers = %s, want %s", got, strings.Join(tt.want, " "))
			}
		})
	}
}

func mustGlyph(t *testing.T, doc *memdoc.Document, name string) *memdoc.Glyph {
	t.Helper()
	g, ok := doc.Glyph(name)
	if !ok {
		t.Fatalf("glyph %q missing", name)
	}
	return g
}

func TestResolveScopeErrors(t *testing.T) {
	empty := memdoc.New()
	noExport := memdoc.New()
	noExport.AddMaster("m1", "Regular")
	g := noExport.AddGlyph("x", false)
	if _, err := g.AddLayer("m1", ""); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		doc    glyphfix.Document
		scope  glyphfix.Scope
		reason string
	}{
		{"no document", nil, glyphfix.ScopeSelectedLayers, "no document open"},
		{"empty selection", noExport, glyphfix.ScopeSelectedLayers, "select one or more layers"},
		{"no masters", empty, glyphfix.ScopeAllExportable, "no masters"},
		{"no selected glyphs", noExport, glyphfix.ScopeSelectedGlyphs, "no selected glyphs"},
		{"no exportable glyphs", noExport, glyphfix.ScopeAllExportable, "no exportable glyphs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := glyphfix.ResolveScope(tt.doc, tt.scope, glyphfix.MasterAll)
			var uie *glyphfix.UserInputError
			if !errors.As(err, &uie) {
				t.Fatalf("ResolveScope() = %v, want UserInputError", err)
			}
			if !strings.Contains(uie.Reason, tt.reason) {
				t.Errorf("reason = %q, want it to mention %q", uie.Reason, tt.reason)
			}
		})
	}

	if _, err := glyphfix.ResolveScope(nil, glyphfix.ScopeAllExportable, glyphfix.MasterAll); !errors.Is(err, glyphfix.ErrNoDocument) {
		t.Errorf("nil document: got %v, want ErrNoDocument", err)
	}
}

// An unusable scope must fail before any host mutation call.
func TestScopeGuardPerformsNoWrites(t *testing.T) {
	f := newFixture(t)
	f.doc.Select() // empty selection
	doc := &spyDoc{Document: f.doc}
	spy := newSpyCodec(doc)

	for _, mode := range []glyphfix.Mode{glyphfix.GridMode{Step: 25}, glyphfix.MirrorMode{}} {
		e := mustEngine(t, glyphfix.Settings{Scope: glyphfix.ScopeSelectedLayers, Mode: mode}, glyphfix.WithCodec(spy))
		_, err := e.Apply(doc)
		if !glyphfix.IsUserInput(err) {
			t.Fatalf("Apply() = %v, want UserInputError", err)
		}
	}
	if len(spy.writes) != 0 {
		t.Errorf("codec recorded %d writes, want 0", len(spy.writes))
	}
	if doc.mutations() != 0 {
		t.Errorf("host saw %d transactional calls, want 0", doc.mutations())
	}
	if f.doc.UndoDepth() != 0 {
		t.Errorf("undo depth = %d, want 0", f.doc.UndoDepth())
	}
}

func TestGridApplyIdempotent(t *testing.T) {
	for _, tol := range []float64{0, 1, 5, 20} {
		t.Run(fmt.Sprintf("tolerance=%v", tol), func(t *testing.T) {
			f := newFixture(t)
			doc := &spyDoc{Document: f.doc}
			spy := newSpyCodec(doc)
			e := mustEngine(t, glyphfix.Settings{
				Scope:   glyphfix.ScopeAllExportable,
				Masters: glyphfix.MasterAll,
				Mode:    glyphfix.GridMode{Step: 25, Tolerance: tol},
			}, glyphfix.WithCodec(spy))

			first, err := e.Apply(doc)
			if err != nil {
				t.Fatalf("first Apply() error = %v", err)
			}
			writes := len(spy.writes)
			if writes != first.Fixed {
				t.Errorf("writes = %d, Fixed = %d", writes, first.Fixed)
			}

			second, err := e.Apply(doc)
			if err != nil {
				t.Fatalf("second Apply() error = %v", err)
			}
			if second.Fixed != 0 || len(spy.writes) != writes {
				t.Errorf("second run fixed %d (%d new writes), want 0", second.Fixed, len(spy.writes)-writes)
			}
			if second.Skipped != second.Scanned {
				t.Errorf("second run: skipped %d of %d", second.Skipped, second.Scanned)
			}
		})
	}
}

func TestGridApplyValues(t *testing.T) {
	f := newFixture(t)
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 25, Tolerance: 5},
	})
	res, err := e.Apply(f.doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// (12,13): both 12 and 13 away from a gridline, outside tolerance.
	if got := transformOf(t, f.offA); got != glyphfix.Translate(12, 13) {
		t.Errorf("A component = %+v, want unchanged", got)
	}
	// (24,10): x is 1 from 25 and snaps, y is 10 from 0 and stays.
	if got := transformOf(t, f.offD); got != glyphfix.Translate(25, 10) {
		t.Errorf("D component = %+v, want (25,10)", got)
	}
	// Mirrored (1,0,0,-1,50,150) is already on the grid.
	if got := transformOf(t, f.mirrored); got.TX != 50 || got.TY != 150 {
		t.Errorf("mirrored component moved: %+v", got)
	}
	if res.Fixed != 1 || res.Scanned != 4 || res.Skipped != 3 {
		t.Errorf("result = %+v, want fixed=1 scanned=4 skipped=3", res)
	}
	if f.doc.UndoDepth() != 1 || f.doc.UndoName() != "Grid Snapper" {
		t.Errorf("undo depth %d name %q", f.doc.UndoDepth(), f.doc.UndoName())
	}
}

func TestMirrorApplyAndUndo(t *testing.T) {
	f := newFixture(t)
	doc := &spyDoc{Document: f.doc}
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.MirrorMode{Method: glyphfix.MethodAuto, Anchor: glyphfix.AnchorBottomLeft},
	})

	res, err := e.Apply(doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Fixed != 1 || res.Failed != 0 {
		t.Errorf("result = %+v, want 1 fixed", res)
	}
	want := glyphfix.Transform{M11: 1, M22: 1, TX: 50, TY: 50}
	if got := transformOf(t, f.mirrored); got != want {
		t.Errorf("corrected = %+v, want %+v", got, want)
	}
	// C is not exportable and stays mirrored.
	if got := transformOf(t, f.cMirror); !got.IsMirrored() {
		t.Errorf("non-exportable C was touched: %+v", got)
	}

	if doc.begins != 1 || doc.ends != 1 || doc.suspends != 1 || doc.resumes != 1 || doc.redraws != 1 {
		t.Errorf("transaction calls: begin=%d end=%d suspend=%d resume=%d redraw=%d; want 1 each",
			doc.begins, doc.ends, doc.suspends, doc.resumes, doc.redraws)
	}
	if doc.endsWhileSuspended != 1 {
		t.Error("undo group should close before redraw resumes")
	}
	if f.doc.OpenUndoGroups() != 0 || f.doc.RedrawSuspended() {
		t.Error("transaction left open")
	}

	if !f.doc.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := transformOf(t, f.mirrored); got != (glyphfix.Transform{M11: 1, M22: -1, TX: 50, TY: 150}) {
		t.Errorf("after undo = %+v, want original", got)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	doc := &spyDoc{Document: f.doc}
	spy := newSpyCodec(doc)
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.MirrorMode{},
	}, glyphfix.WithCodec(spy))

	first, err := e.Preview(doc)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	second, err := e.Preview(doc)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if first != second {
		t.Errorf("Preview() not idempotent:\n%s\n---\n%s", first, second)
	}
	if len(spy.writes) != 0 || doc.mutations() != 0 {
		t.Errorf("Preview() wrote %d transforms, %d host calls", len(spy.writes), doc.mutations())
	}
}

func TestApplyToleratesWriteFailures(t *testing.T) {
	f := newFixture(t)
	doc := &spyDoc{Document: f.doc}
	spy := newSpyCodec(doc)
	spy.fail[f.offA] = errors.New("locked layer")
	spy.panicOn = f.offD

	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 100},
	}, glyphfix.WithCodec(spy))

	res, err := e.Apply(doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// Off-grid at step 100: mirrored (50,150), offA (12,13), A/m2 (25,50), offD (24,10).
	if res.Fixed != 2 || res.Failed != 2 {
		t.Fatalf("result = %+v, want 2 fixed and 2 failed", res)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("got %d failures", len(res.Failures))
	}
	if res.Failures[0].Glyph != "A" || res.Failures[0].Index != 1 {
		t.Errorf("first failure = %+v", res.Failures[0])
	}
	if !strings.Contains(res.Failures[1].Error(), "host panicked") {
		t.Errorf("panic not recorded: %v", res.Failures[1])
	}
	if doc.begins != 1 || doc.ends != 1 || doc.resumes != 1 {
		t.Errorf("transaction not closed exactly once: %+v", doc)
	}
	if got := transformOf(t, f.offA); got != glyphfix.Translate(12, 13) {
		t.Errorf("failed component changed: %+v", got)
	}
}

func TestApplyAbortsWhenHostGoesAway(t *testing.T) {
	f := newFixture(t)
	doc := &spyDoc{Document: f.doc}
	spy := newSpyCodec(doc)
	spy.fail[f.offA] = fmt.Errorf("layer gone: %w", glyphfix.ErrHostUnavailable)

	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 100},
	}, glyphfix.WithCodec(spy))

	res, err := e.Apply(doc)
	if !errors.Is(err, glyphfix.ErrHostUnavailable) {
		t.Fatalf("Apply() error = %v, want ErrHostUnavailable", err)
	}
	if !res.Aborted || res.Fixed != 1 || res.Remaining != 3 {
		t.Errorf("result = %+v, want aborted with 1 fixed and 3 remaining", res)
	}
	// The write before the failure stays committed.
	if got := transformOf(t, f.mirrored); got.TX != 100 || got.TY != 200 {
		t.Errorf("first write lost: %+v", got)
	}
	if doc.ends != 1 || doc.resumes != 1 || doc.redraws != 1 {
		t.Errorf("transaction not closed: end=%d resume=%d redraw=%d", doc.ends, doc.resumes, doc.redraws)
	}
	if f.doc.UndoDepth() != 1 {
		t.Errorf("undo depth = %d, want 1", f.doc.UndoDepth())
	}
}

func TestApplyOnClosedDocument(t *testing.T) {
	f := newFixture(t)
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 100},
	})
	p, err := e.Plan(f.doc)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	f.doc.Close()

	res, err := e.ApplyPlan(f.doc, p)
	if !errors.Is(err, glyphfix.ErrHostUnavailable) || !res.Aborted || res.Fixed != 0 {
		t.Errorf("ApplyPlan() on closed doc = %+v, %v", res, err)
	}
	if f.doc.OpenUndoGroups() != 0 || f.doc.RedrawSuspended() {
		t.Error("transaction left open")
	}
}

func TestApplyPlanDetachedComponent(t *testing.T) {
	f := newFixture(t)
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 25},
	})
	p, err := e.Plan(f.doc)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	f.aM1.RemoveComponent(f.offA)

	res, err := e.ApplyPlan(f.doc, p)
	if err != nil {
		t.Fatalf("ApplyPlan() error = %v", err)
	}
	if res.Failed != 1 || !errors.Is(res.Failures[0], memdoc.ErrDetached) {
		t.Errorf("result = %+v, want one ErrDetached failure", res)
	}
	if res.Fixed != len(p.Ops)-1 {
		t.Errorf("fixed = %d, want %d", res.Fixed, len(p.Ops)-1)
	}
}

func TestNothingToFixOpensNoTransaction(t *testing.T) {
	f := newFixture(t)
	doc := &spyDoc{Document: f.doc}
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 1},
	})
	res, err := e.Apply(doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Fixed != 0 || doc.mutations() != 0 {
		t.Errorf("result %+v with %d host calls, want no work", res, doc.mutations())
	}
}

func TestMirrorUnreadableBounds(t *testing.T) {
	doc := memdoc.New()
	doc.AddMaster("m1", "Regular")
	l, err := doc.AddGlyph("A", true).AddLayer("m1", "")
	if err != nil {
		t.Fatal(err)
	}
	c := l.AddComponent("ghost", glyphfix.Scale(1, -1))

	e := mustEngine(t, glyphfix.Settings{Scope: glyphfix.ScopeAllExportable, Mode: glyphfix.MirrorMode{}})
	res, err := e.Apply(doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Unfixable != 1 || res.Fixed != 0 {
		t.Errorf("result = %+v, want 1 unfixable", res)
	}
	if got := transformOf(t, c); got != glyphfix.Scale(1, -1) {
		t.Errorf("unfixable component changed: %+v", got)
	}
}

func TestEngineNotReentrant(t *testing.T) {
	f := newFixture(t)
	var e *glyphfix.Engine
	var inner error
	e = mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 25},
	}, glyphfix.WithProgress(func(glyphfix.Progress) {
		if inner == nil {
			_, inner = e.Preview(f.doc)
		}
	}))

	if _, err := e.Apply(f.doc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !errors.Is(inner, glyphfix.ErrBusy) {
		t.Errorf("nested Preview() = %v, want ErrBusy", inner)
	}
	if _, err := e.Preview(f.doc); err != nil {
		t.Errorf("Preview() after run = %v, want nil", err)
	}
}

func TestProgressCheckpoints(t *testing.T) {
	f := newFixture(t)
	var got []glyphfix.Progress
	e := mustEngine(t, glyphfix.Settings{
		Scope:   glyphfix.ScopeAllExportable,
		Masters: glyphfix.MasterAll,
		Mode:    glyphfix.GridMode{Step: 25},
	}, glyphfix.WithProgressInterval(2), glyphfix.WithProgress(func(p glyphfix.Progress) {
		got = append(got, p)
	}))

	if _, err := e.Plan(f.doc); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	// Five layers: checkpoints after 2, 4 and the last.
	if len(got) != 3 {
		t.Fatalf("got %d checkpoints, want 3: %+v", len(got), got)
	}
	last := got[len(got)-1]
	if last.Layers != 5 || last.Total != 5 || last.Components != 4 {
		t.Errorf("last checkpoint = %+v", last)
	}
}
