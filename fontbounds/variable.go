package fontbounds

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/internal/cache"
)

// Location is a point in a variable font's design space, keyed by
// four-letter axis tag ("wght", "wdth", ...).
type Location map[string]float32

// Variable measures glyphs of one variable font at a design-space location
// per master. It is safe for concurrent use.
type Variable struct {
	mu      sync.Mutex
	face    *font.Face
	names   *glyphNames
	masters map[string][]font.Variation
	current string
	cache   *cache.Cache[boundsKey, glyphfix.Rect]
}

// NewVariable parses a variable font and binds each master id to a
// location. Axis tags must be exactly four characters.
func NewVariable(data []byte, masters map[string]Location) (*Variable, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontbounds: failed to parse variable font: %w", err)
	}
	// go-text has no reverse name lookup, so names come from sfnt.
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontbounds: failed to index glyph names: %w", err)
	}

	v := &Variable{
		face:    face,
		names:   newGlyphNames(sf),
		masters: make(map[string][]font.Variation, len(masters)),
		cache:   cache.New[boundsKey, glyphfix.Rect](0),
	}
	for id, loc := range masters {
		vars, err := variations(loc)
		if err != nil {
			return nil, fmt.Errorf("fontbounds: master %q: %w", id, err)
		}
		v.masters[id] = vars
	}
	glyphfix.Logger().Debug("fontbounds: variable font parsed", "masters", len(v.masters))
	return v, nil
}

// variations converts a Location into go-text variations, sorted by tag so
// the same location always produces the same slice.
func variations(loc Location) ([]font.Variation, error) {
	tags := make([]string, 0, len(loc))
	for tag := range loc {
		if len(tag) != 4 {
			return nil, fmt.Errorf("axis tag %q must be 4 characters", tag)
		}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out := make([]font.Variation, 0, len(tags))
	for _, tag := range tags {
		out = append(out, font.Variation{Tag: ot.MustNewTag(tag), Value: loc[tag]})
	}
	return out, nil
}

// GlyphBounds returns the outline bounds of glyph at master's location, in
// font units with y up.
func (v *Variable) GlyphBounds(glyph, masterID string) (glyphfix.Rect, error) {
	vars, ok := v.masters[masterID]
	if !ok {
		return glyphfix.Rect{}, fmt.Errorf("%w %q", ErrUnknownMaster, masterID)
	}
	return v.cache.GetOrCreate(boundsKey{master: masterID, glyph: glyph}, func() (glyphfix.Rect, error) {
		gi, err := v.names.lookup(glyph)
		if err != nil {
			return glyphfix.Rect{}, err
		}
		return v.extents(masterID, vars, gi, glyph)
	})
}

func (v *Variable) extents(masterID string, vars []font.Variation, gi sfnt.GlyphIndex, glyph string) (glyphfix.Rect, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// font.Face is not safe for concurrent use and keeps the last
	// coordinates, so switch only when the master changes.
	if v.current != masterID {
		v.face.SetVariations(vars)
		v.current = masterID
	}
	ext, ok := v.face.GlyphExtents(font.GID(gi))
	if !ok {
		return glyphfix.Rect{}, fmt.Errorf("fontbounds: no extents for %q", glyph)
	}
	// Extents follow the HarfBuzz convention: YBearing is the top edge and
	// Height is negative.
	x0, x1 := float64(ext.XBearing), float64(ext.XBearing+ext.Width)
	y0, y1 := float64(ext.YBearing+ext.Height), float64(ext.YBearing)
	return glyphfix.Rect{
		MinX: min(x0, x1), MinY: min(y0, y1),
		MaxX: max(x0, x1), MaxY: max(y0, y1),
	}, nil
}
