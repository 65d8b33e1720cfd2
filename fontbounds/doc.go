// Package fontbounds reads base glyph outline bounds out of compiled fonts.
//
// Two sources are provided, both usable as a memdoc.BoundsSource:
//
//   - Static holds one static TTF/OTF binary per master and measures glyphs
//     with golang.org/x/image/font/sfnt.
//   - Variable holds one variable font and maps each master to a location
//     in its design space; glyph extents at that location come from
//     github.com/go-text/typesetting.
//
// Glyphs are looked up by production name from the font's post table or
// CFF charset, then by "uniXXXX" names, single-character names through the
// cmap, and finally "gidN". Bounds are in font units with y up, and are
// memoized per (master, glyph).
package fontbounds
