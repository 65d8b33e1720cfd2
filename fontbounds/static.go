package fontbounds

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/internal/cache"
)

// boundsKey identifies one cached measurement.
type boundsKey struct {
	master string
	glyph  string
}

// staticFace is one parsed master font.
type staticFace struct {
	font  *sfnt.Font
	names *glyphNames
	ppem  fixed.Int26_6
}

// Static measures glyphs in one static font binary per master.
// It is safe for concurrent use.
type Static struct {
	faces map[string]*staticFace
	cache *cache.Cache[boundsKey, glyphfix.Rect]
}

// NewStatic parses one font binary per master id.
func NewStatic(masters map[string][]byte) (*Static, error) {
	s := &Static{
		faces: make(map[string]*staticFace, len(masters)),
		cache: cache.New[boundsKey, glyphfix.Rect](0),
	}
	for id, data := range masters {
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("fontbounds: master %q: failed to parse font: %w", id, err)
		}
		s.faces[id] = &staticFace{
			font:  f,
			names: newGlyphNames(f),
			// One pixel per font unit, so bounds come back in font units.
			ppem: fixed.I(int(f.UnitsPerEm())),
		}
	}
	glyphfix.Logger().Debug("fontbounds: static fonts parsed", "masters", len(s.faces))
	return s, nil
}

// LoadStaticFiles reads one font file per master id concurrently and
// parses them with NewStatic.
func LoadStaticFiles(ctx context.Context, paths map[string]string) (*Static, error) {
	var (
		mu   sync.Mutex
		data = make(map[string][]byte, len(paths))
	)
	g, ctx := errgroup.WithContext(ctx)
	for id, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("fontbounds: master %q: %w", id, err)
			}
			mu.Lock()
			data[id] = b
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewStatic(data)
}

// GlyphBounds returns the outline bounds of glyph in master, in font units
// with y up.
func (s *Static) GlyphBounds(glyph, masterID string) (glyphfix.Rect, error) {
	face, ok := s.faces[masterID]
	if !ok {
		return glyphfix.Rect{}, fmt.Errorf("%w %q", ErrUnknownMaster, masterID)
	}
	return s.cache.GetOrCreate(boundsKey{master: masterID, glyph: glyph}, func() (glyphfix.Rect, error) {
		return face.bounds(glyph)
	})
}

// Masters returns the number of masters loaded.
func (s *Static) Masters() int { return len(s.faces) }

func (f *staticFace) bounds(glyph string) (glyphfix.Rect, error) {
	gi, err := f.names.lookup(glyph)
	if err != nil {
		return glyphfix.Rect{}, err
	}
	var buf sfnt.Buffer
	b, _, err := f.font.GlyphBounds(&buf, gi, f.ppem, font.HintingNone)
	if err != nil {
		return glyphfix.Rect{}, fmt.Errorf("fontbounds: bounds of %q: %w", glyph, err)
	}
	// sfnt measures with y down.
	return glyphfix.Rect{
		MinX: fixedToFloat64(b.Min.X),
		MinY: -fixedToFloat64(b.Max.Y),
		MaxX: fixedToFloat64(b.Max.X),
		MaxY: -fixedToFloat64(b.Min.Y),
	}, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
