// Package glyphfix corrects the placement of components inside glyph layers.
//
// # Overview
//
// A component is a reference to a base glyph placed into another glyph's
// layer by a six-value affine transform. glyphfix scans components for one
// of two placement defects, plans a corrected transform, previews the plan
// as text and commits it as a single undoable transaction:
//
//   - GridMode snaps translation onto a grid, optionally only when a value
//     already sits within a tolerance of a gridline.
//   - MirrorMode removes reflection (negative determinant) by flipping one
//     basis row, then shifts the component so that its bottom-left corner
//     or center stays where it was.
//
// # Quick Start
//
//	eng, err := glyphfix.New(glyphfix.Settings{
//	    Scope:   glyphfix.ScopeAllExportable,
//	    Masters: glyphfix.MasterAll,
//	    Mode:    glyphfix.MirrorMode{Method: glyphfix.MethodAuto, Anchor: glyphfix.AnchorBottomLeft},
//	})
//	if err != nil {
//	    return err
//	}
//	text, err := eng.Preview(doc) // no writes
//	res, err := eng.Apply(doc)    // one undo group
//
// # Hosts
//
// The engine talks to the font document only through the Document, Glyph,
// Layer and Component interfaces, always through an explicit handle. The
// memdoc package provides an in-memory host with an undo stack, and the
// fontbounds package reads base glyph bounds out of compiled fonts.
//
// # Coordinate System
//
// Font units with y increasing upward. A transform maps a point (x, y) of
// the base outline to (M11*x + M21*y + TX, M12*x + M22*y + TY).
//
// # Concurrency
//
// Every call is synchronous and runs on the caller's goroutine. An Engine
// refuses to start a run while another is in flight.
package glyphfix
