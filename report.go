package glyphfix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Report renders a plan as the text shown in a preview pane. It does not
// touch the document, and the same plan always renders the same text.
// Values are rounded for display only.
func Report(p *Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Layers scanned: %d\n", p.Scope.Len())
	fmt.Fprintf(&b, "Components scanned: %d\n", p.Components)
	switch m := p.Settings.Mode.(type) {
	case GridMode:
		fmt.Fprintf(&b, "Qualify to snap: %d\n", len(p.Ops))
		fmt.Fprintf(&b, "Snap step: %s | Tolerance: ±%s\n", formatFloat(m.Step), formatFloat(m.Tolerance))
	case MirrorMode:
		fmt.Fprintf(&b, "Mirrored found: %d\n", p.Defective())
		fmt.Fprintf(&b, "Method: %s | Anchor: %s\n", m.Method, m.Anchor)
	}
	if n := p.Unfixable(); n > 0 {
		fmt.Fprintf(&b, "Not fixable: %d\n", n)
	}
	b.WriteString("\n")

	if len(p.Findings) == 0 {
		b.WriteString(nothingFound(p.Settings.Mode))
		b.WriteString("\n")
		return b.String()
	}

	var current string
	for i, f := range p.Findings {
		id := f.Layer.Layer.ID()
		if i == 0 || id != current {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "/%s  layer: %s\n", f.Layer.GlyphName, f.Layer.DisplayName())
			current = id
		}
		fmt.Fprintf(&b, "   - %s  (%s)\n", f.BaseGlyph, describe(f))
	}
	return b.String()
}

func nothingFound(m Mode) string {
	if _, ok := m.(MirrorMode); ok {
		return "No mirrored components found in the selection."
	}
	return "No components qualify for snapping (given step + tolerance)."
}

func describe(f Finding) string {
	switch f.Status {
	case StatusUnreadable:
		return "unreadable: " + f.Err.Error()
	case StatusUnfixable:
		return "unfixable: " + f.Err.Error()
	}

	if f.Defect.Kind == DefectMirror {
		return fmt.Sprintf("fix %s, Δx=%s, Δy=%s", f.Flip, display(f.Delta.X), display(f.Delta.Y))
	}

	x := "tX unchanged"
	if f.Defect.Axes.Has(AxisX) {
		x = fmt.Sprintf("tX %.2f→%s", f.Before.TX, display(f.After.TX))
	}
	y := "tY unchanged"
	if f.Defect.Axes.Has(AxisY) {
		y = fmt.Sprintf("tY %.2f→%s", f.Before.TY, display(f.After.TY))
	}
	return x + ", " + y
}

// display rounds v to two decimals and drops trailing zeros.
func display(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
