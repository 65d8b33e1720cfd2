package fontbounds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/sfnt"
)

// ErrUnknownGlyph is returned when a glyph name resolves to no glyph.
var ErrUnknownGlyph = errors.New("fontbounds: unknown glyph")

// ErrUnknownMaster is returned for masters the source was not given.
var ErrUnknownMaster = errors.New("fontbounds: unknown master")

// glyphNames resolves glyph names to glyph indices for one font.
type glyphNames struct {
	font   *sfnt.Font
	byName map[string]sfnt.GlyphIndex
}

func newGlyphNames(f *sfnt.Font) *glyphNames {
	n := &glyphNames{font: f, byName: make(map[string]sfnt.GlyphIndex)}
	var buf sfnt.Buffer
	for i := 0; i < f.NumGlyphs(); i++ {
		name, err := f.GlyphName(&buf, sfnt.GlyphIndex(i))
		if err != nil || name == "" {
			continue
		}
		if _, dup := n.byName[name]; !dup {
			n.byName[name] = sfnt.GlyphIndex(i)
		}
	}
	return n
}

// lookup resolves name, trying production names first.
func (n *glyphNames) lookup(name string) (sfnt.GlyphIndex, error) {
	if gi, ok := n.byName[name]; ok {
		return gi, nil
	}

	var buf sfnt.Buffer
	if r, ok := uniName(name); ok {
		if gi, err := n.font.GlyphIndex(&buf, r); err == nil && gi != 0 {
			return gi, nil
		}
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if gi, err := n.font.GlyphIndex(&buf, r); err == nil && gi != 0 {
			return gi, nil
		}
	}
	if rest, ok := strings.CutPrefix(name, "gid"); ok {
		if v, err := strconv.Atoi(rest); err == nil && v >= 0 && v < n.font.NumGlyphs() {
			return sfnt.GlyphIndex(v), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownGlyph, name)
}

// uniName parses "uniXXXX" and "uXXXXX" glyph names.
func uniName(name string) (rune, bool) {
	var hex string
	switch {
	case strings.HasPrefix(name, "uni") && len(name) == 7:
		hex = name[3:]
	case strings.HasPrefix(name, "u") && (len(name) == 6 || len(name) == 7):
		hex = name[1:]
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}
