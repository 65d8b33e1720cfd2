// Package memdoc is an in-memory font document implementing the glyphfix
// host interfaces.
//
// It keeps masters, glyphs, layers and placed components, tracks the layer
// selection, and records every transform write inside undo groups so that
// Undo can revert a whole batch at once. Documents load from and save to
// TOML (human-edited) or msgpack (".gfdoc" snapshots that also carry the
// undo journal).
//
// Base glyph bounds come from each layer's own recorded bounds, falling
// back to an attached BoundsSource such as fontbounds.Static.
package memdoc
