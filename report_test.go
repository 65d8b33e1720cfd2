package glyphfix_test

import (
	"strings"
	"testing"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/memdoc"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		mode glyphfix.Mode
		want string
	}{
		{
			name: "grid",
			mode: glyphfix.GridMode{Step: 25},
			want: `Layers scanned: 5
Components scanned: 4
Qualify to snap: 2
Snap step: 25 | Tolerance: ±0

/A  layer: (master)
   - B  (tX 12.00→0, tY 13.00→25)

/D  layer: (master)
   - B  (tX 24.00→25, tY 10.00→0)
`,
		},
		{
			name: "grid one axis",
			mode: glyphfix.GridMode{Step: 25, Tolerance: 2.5},
			want: `Layers scanned: 5
Components scanned: 4
Qualify to snap: 1
Snap step: 25 | Tolerance: ±2.5

/D  layer: (master)
   - B  (tX 24.00→25, tY unchanged)
`,
		},
		{
			name: "grid nothing found",
			mode: glyphfix.GridMode{Step: 1},
			want: `Layers scanned: 5
Components scanned: 4
Qualify to snap: 0
Snap step: 1 | Tolerance: ±0

No components qualify for snapping (given step + tolerance).
`,
		},
		{
			name: "mirror",
			mode: glyphfix.MirrorMode{},
			want: `Layers scanned: 5
Components scanned: 4
Mirrored found: 1
Method: auto | Anchor: bottom-left

/A  layer: (master)
   - B  (fix Y, Δx=0, Δy=-100)
`,
		},
		{
			name: "mirror horizontal only",
			mode: glyphfix.MirrorMode{Method: glyphfix.MethodHorizontalOnly, Anchor: glyphfix.AnchorCenter},
			want: `Layers scanned: 5
Components scanned: 4
Mirrored found: 1
Method: horizontal | Anchor: center

/A  layer: (master)
   - B  (fix X, Δx=100, Δy=0)
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			e := mustEngine(t, glyphfix.Settings{
				Scope:   glyphfix.ScopeAllExportable,
				Masters: glyphfix.MasterAll,
				Mode:    tt.mode,
			})
			got, err := e.Preview(f.doc)
			if err != nil {
				t.Fatalf("Preview() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Preview() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestReportNamedLayerAndFailures(t *testing.T) {
	doc := memdoc.New()
	doc.AddMaster("m1", "Regular")
	doc.AddMaster("m2", "Bold")
	g := doc.AddGlyph("A", true)
	master, err := g.AddLayer("m1", "")
	if err != nil {
		t.Fatal(err)
	}
	master.AddComponent("ghost", glyphfix.Scale(1, -1))
	alt, err := g.AddLayer("m2", "Alt")
	if err != nil {
		t.Fatal(err)
	}
	alt.AddComponent("ghost", glyphfix.Scale(-1, 1))
	doc.Select(master, alt)

	e := mustEngine(t, glyphfix.Settings{Scope: glyphfix.ScopeSelectedLayers, Mode: glyphfix.MirrorMode{}})
	got, err := e.Preview(doc)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	for _, want := range []string{
		"Layers scanned: 2\n",
		"Mirrored found: 2\n",
		"Not fixable: 2\n",
		"/A  layer: (master)\n   - ghost  (unreadable: ",
		"\n\n/A  layer: Alt\n   - ghost  (unreadable: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}
