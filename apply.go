package glyphfix

import (
	"errors"
	"fmt"
	"log/slog"
)

// Result is the outcome of Apply.
type Result struct {
	// Scanned is the number of components inspected.
	Scanned int
	// Fixed is the number of corrections written.
	Fixed int
	// Skipped is the number of components that needed no fix.
	Skipped int
	// Failed is the number of corrections the host refused.
	Failed int
	// Unfixable is the number of defective or unreadable components for
	// which no correction was planned.
	Unfixable int
	// Remaining is the number of planned writes not attempted because
	// the batch was aborted.
	Remaining int
	// Aborted is true when the host became unavailable mid-batch.
	Aborted bool
	// Failures holds one WriteError per failed correction.
	Failures []*WriteError
}

// Commit writes a plan's ops to doc as one undoable transaction. Redraw is
// suspended and an undo group is open for the whole batch; both are
// released on every exit path and a final redraw is requested.
//
// A failed write is recorded and the batch goes on. A write failing with
// ErrHostUnavailable stops the batch; corrections already written stay in
// the undo group, which is closed normally.
//
// An empty plan performs no host calls at all.
func Commit(doc Document, codec TransformCodec, plan *Plan) (Result, error) {
	return commit(doc, codec, plan, Logger())
}

func commit(doc Document, codec TransformCodec, plan *Plan, log *slog.Logger) (res Result, err error) {
	res = Result{
		Scanned:   plan.Components,
		Skipped:   plan.Skipped(),
		Unfixable: plan.Unfixable(),
	}
	if plan.Empty() {
		log.Info("glyphfix: nothing to fix", "mode", plan.Settings.Mode.Name(), "components", plan.Components)
		return res, nil
	}
	if codec == nil {
		codec = NewHostCodec(doc)
	}

	defer doc.Redraw()
	doc.SuspendRedraw()
	defer doc.ResumeRedraw()
	doc.BeginUndoGroup(undoName(plan.Settings.Mode))
	defer doc.EndUndoGroup()

	log.Info("glyphfix: applying corrections", "mode", plan.Settings.Mode.Name(), "ops", len(plan.Ops))
	for i, op := range plan.Ops {
		werr := writeOp(codec, op)
		if werr == nil {
			res.Fixed++
			log.Debug("glyphfix: wrote transform",
				"glyph", op.Layer.GlyphName, "layer", op.Layer.DisplayName(), "index", op.Index)
			continue
		}
		if errors.Is(werr, ErrHostUnavailable) {
			res.Aborted = true
			res.Remaining = len(plan.Ops) - i
			log.Warn("glyphfix: host unavailable, batch aborted",
				"fixed", res.Fixed, "remaining", res.Remaining, "err", werr)
			return res, fmt.Errorf("glyphfix: apply aborted after %d of %d writes: %w", res.Fixed, len(plan.Ops), werr)
		}
		res.Failed++
		res.Failures = append(res.Failures, &WriteError{
			Glyph: op.Layer.GlyphName,
			Layer: op.Layer.DisplayName(),
			Index: op.Index,
			Err:   werr,
		})
		log.Warn("glyphfix: write failed",
			"glyph", op.Layer.GlyphName, "layer", op.Layer.DisplayName(), "index", op.Index, "err", werr)
	}
	log.Info("glyphfix: corrections applied", "fixed", res.Fixed, "failed", res.Failed)
	return res, nil
}

// writeOp commits one op. A panic inside the host is turned into an error
// so that the batch and its undo group are still closed in order.
func writeOp(codec TransformCodec, op CorrectionOp) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glyphfix: host panicked writing transform: %v", r)
		}
	}()
	return codec.SetTransform(op.Component, op.Transform)
}

func undoName(m Mode) string {
	switch m.(type) {
	case GridMode:
		return "Grid Snapper"
	case MirrorMode:
		return "Mirror Mender"
	default:
		return "glyphfix"
	}
}
