package glyphfix

import "log/slog"

// Progress is reported at scan checkpoints.
type Progress struct {
	// Layers is the number of layers scanned so far; Total is the scope size.
	Layers, Total int
	Components    int
	Findings      int
}

// Scan plans corrections for every component in scope without touching the
// document. The resulting Plan is what Preview renders and Apply commits.
func Scan(doc Document, codec TransformCodec, settings Settings, scope ScopeSet) *Plan {
	return scan(doc, codec, settings, scope, defaultOptions(), Logger())
}

func scan(doc Document, codec TransformCodec, settings Settings, scope ScopeSet, opts engineOptions, log *slog.Logger) *Plan {
	if codec == nil {
		codec = NewHostCodec(doc)
	}
	p := &Plan{Settings: settings, Scope: scope}
	total := scope.Len()

	for i, sl := range scope.Layers {
		for j, c := range sl.Layer.Components() {
			if c == nil {
				continue
			}
			p.Components++
			f, ok := planComponent(settings.Mode, codec, sl, j, c)
			if !ok {
				continue
			}
			p.Findings = append(p.Findings, f)
			if f.Status == StatusPlanned {
				p.Ops = append(p.Ops, CorrectionOp{Layer: sl, Index: j, Component: c, Transform: f.After})
			}
		}

		if n := i + 1; n%opts.interval == 0 || n == total {
			pr := Progress{Layers: n, Total: total, Components: p.Components, Findings: len(p.Findings)}
			log.Debug("glyphfix: scan checkpoint",
				"mode", settings.Mode.Name(),
				"layers", pr.Layers, "total", pr.Total,
				"components", pr.Components, "findings", pr.Findings)
			if opts.progress != nil {
				opts.progress(pr)
			}
		}
	}
	return p
}
