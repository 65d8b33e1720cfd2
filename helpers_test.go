package glyphfix_test

import (
	"testing"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/memdoc"
)

// spyCodec records writes and can fail or panic on chosen components.
type spyCodec struct {
	glyphfix.TransformCodec
	writes  []glyphfix.Transform
	fail    map[glyphfix.Component]error
	panicOn glyphfix.Component
}

func newSpyCodec(doc glyphfix.Document) *spyCodec {
	return &spyCodec{
		TransformCodec: glyphfix.NewHostCodec(doc),
		fail:           make(map[glyphfix.Component]error),
	}
}

func (s *spyCodec) SetTransform(c glyphfix.Component, t glyphfix.Transform) error {
	if s.panicOn != nil && c == s.panicOn {
		panic("host exploded")
	}
	if err := s.fail[c]; err != nil {
		return err
	}
	s.writes = append(s.writes, t)
	return s.TransformCodec.SetTransform(c, t)
}

// spyDoc counts the transactional calls made on a memdoc.Document.
type spyDoc struct {
	*memdoc.Document
	begins, ends       int
	suspends, resumes  int
	redraws            int
	endsWhileSuspended int
}

func (d *spyDoc) BeginUndoGroup(name string) {
	d.begins++
	d.Document.BeginUndoGroup(name)
}

func (d *spyDoc) EndUndoGroup() {
	d.ends++
	if d.suspends > d.resumes {
		d.endsWhileSuspended++
	}
	d.Document.EndUndoGroup()
}

func (d *spyDoc) SuspendRedraw() {
	d.suspends++
	d.Document.SuspendRedraw()
}

func (d *spyDoc) ResumeRedraw() {
	d.resumes++
	d.Document.ResumeRedraw()
}

func (d *spyDoc) Redraw() {
	d.redraws++
	d.Document.Redraw()
}

func (d *spyDoc) mutations() int {
	return d.begins + d.ends + d.suspends + d.resumes + d.redraws
}

// fixture builds:
//
//	masters m1 "Regular", m2 "Bold"
//	/B       base glyph, bounds (0,0,100,100) in both masters
//	/A  m1:  B mirrored (1,0,0,-1,50,150), B at (12,13)
//	/A  m2:  B at (25,50)
//	/C       not exported, m1: B mirrored
//	/D       m1 only: B at (24,10)
type fixture struct {
	doc            *memdoc.Document
	aM1, aM2, dM1  *memdoc.Layer
	mirrored, offA *memdoc.Component
	offD, cMirror  *memdoc.Component
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := memdoc.New()
	doc.AddMaster("m1", "Regular")
	doc.AddMaster("m2", "Bold")

	mustLayer := func(g *memdoc.Glyph, master string) *memdoc.Layer {
		l, err := g.AddLayer(master, "")
		if err != nil {
			t.Fatalf("AddLayer(%s, %s) error = %v", g.Name(), master, err)
		}
		return l
	}

	f := &fixture{doc: doc}
	a := doc.AddGlyph("A", true)
	b := doc.AddGlyph("B", true)
	c := doc.AddGlyph("C", false)
	d := doc.AddGlyph("D", true)

	f.aM1 = mustLayer(a, "m1")
	f.aM2 = mustLayer(a, "m2")
	for _, m := range []string{"m1", "m2"} {
		mustLayer(b, m).SetBounds(glyphfix.R(0, 0, 100, 100))
	}
	f.mirrored = f.aM1.AddComponent("B", glyphfix.Transform{M11: 1, M22: -1, TX: 50, TY: 150})
	f.offA = f.aM1.AddComponent("B", glyphfix.Translate(12, 13))
	f.aM2.AddComponent("B", glyphfix.Translate(25, 50))

	f.cMirror = mustLayer(c, "m1").AddComponent("B", glyphfix.Scale(-1, 1))

	f.dM1 = mustLayer(d, "m1")
	f.offD = f.dM1.AddComponent("B", glyphfix.Translate(24, 10))
	return f
}

func mustEngine(t *testing.T, s glyphfix.Settings, opts ...glyphfix.Option) *glyphfix.Engine {
	t.Helper()
	e, err := glyphfix.New(s, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func transformOf(t *testing.T, c *memdoc.Component) glyphfix.Transform {
	t.Helper()
	tr, err := c.Transform()
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	return tr
}
