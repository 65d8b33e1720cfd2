package memdoc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/glyphfix"
)

// Format is a document file encoding.
type Format int

const (
	// FormatTOML is the hand-editable text format.
	FormatTOML Format = iota
	// FormatSnapshot is the msgpack snapshot format, which also keeps the
	// undo journal.
	FormatSnapshot
)

// ErrUnknownFormat is returned for file extensions memdoc does not read.
var ErrUnknownFormat = errors.New("memdoc: unknown document format")

// FormatFor picks a format from a file extension: ".toml", or ".gfdoc"
// and ".msgpack" for snapshots.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".gfdoc", ".msgpack":
		return FormatSnapshot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

type fileDoc struct {
	CurrentMaster string          `toml:"current_master" msgpack:"current_master"`
	Selection     []string        `toml:"selection,omitempty" msgpack:"selection,omitempty"`
	Masters       []fileMaster    `toml:"masters" msgpack:"masters"`
	Glyphs        []fileGlyph     `toml:"glyphs" msgpack:"glyphs"`
	Undo          []fileUndoGroup `toml:"-" msgpack:"undo,omitempty"`
}

type fileMaster struct {
	ID   string `toml:"id" msgpack:"id"`
	Name string `toml:"name" msgpack:"name"`
}

type fileGlyph struct {
	Name   string      `toml:"name" msgpack:"name"`
	Export *bool       `toml:"export,omitempty" msgpack:"export,omitempty"`
	Layers []fileLayer `toml:"layers" msgpack:"layers"`
}

type fileLayer struct {
	Master     string          `toml:"master" msgpack:"master"`
	Name       string          `toml:"name,omitempty" msgpack:"name,omitempty"`
	Bounds     []float64       `toml:"bounds,omitempty" msgpack:"bounds,omitempty"`
	Components []fileComponent `toml:"components,omitempty" msgpack:"components,omitempty"`
}

type fileComponent struct {
	Base      string    `toml:"base" msgpack:"base"`
	Transform []float64 `toml:"transform" msgpack:"transform"`
}

type fileUndoGroup struct {
	Name    string          `msgpack:"name"`
	Entries []fileUndoEntry `msgpack:"entries"`
}

type fileUndoEntry struct {
	Layer  string    `msgpack:"layer"`
	Index  int       `msgpack:"index"`
	Before []float64 `msgpack:"before"`
}

// Load reads a document file, choosing the format from its extension.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes the document to path, replacing the file atomically.
func Save(d *Document, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".memdoc-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := Encode(w, d, format); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*Document, error) {
	var fd fileDoc
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&fd); err != nil {
			return nil, fmt.Errorf("memdoc: parse TOML: %w", err)
		}
	case FormatSnapshot:
		if err := msgpack.NewDecoder(r).Decode(&fd); err != nil {
			return nil, fmt.Errorf("memdoc: decode snapshot: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return fd.build()
}

// Encode writes the document in the given format. Undo history is only
// kept by FormatSnapshot.
func Encode(w io.Writer, d *Document, format Format) error {
	fd := snapshot(d)
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(fd)
	case FormatSnapshot:
		return msgpack.NewEncoder(w).Encode(fd)
	}
	return ErrUnknownFormat
}

func (fd *fileDoc) build() (*Document, error) {
	d := New()
	for _, m := range fd.Masters {
		if m.ID == "" {
			return nil, errors.New("memdoc: master without id")
		}
		d.AddMaster(m.ID, m.Name)
	}
	if fd.CurrentMaster != "" {
		if err := d.SetCurrentMaster(fd.CurrentMaster); err != nil {
			return nil, err
		}
	}

	layers := make(map[string]*Layer)
	for _, fg := range fd.Glyphs {
		export := true
		if fg.Export != nil {
			export = *fg.Export
		}
		g := d.AddGlyph(fg.Name, export)
		for _, fl := range fg.Layers {
			l, err := g.AddLayer(fl.Master, fl.Name)
			if err != nil {
				return nil, fmt.Errorf("glyph %q: %w", fg.Name, err)
			}
			if len(fl.Bounds) > 0 {
				if len(fl.Bounds) != 4 {
					return nil, fmt.Errorf("memdoc: layer %s: bounds need 4 values, got %d", l.id, len(fl.Bounds))
				}
				l.SetBounds(glyphfix.R(fl.Bounds[0], fl.Bounds[1], fl.Bounds[2], fl.Bounds[3]))
			}
			for i, fc := range fl.Components {
				t, ok := glyphfix.FromSlice(fc.Transform)
				if !ok {
					return nil, fmt.Errorf("memdoc: layer %s component %d: transform needs 6 values", l.id, i)
				}
				l.AddComponent(fc.Base, t)
			}
			layers[l.id] = l
		}
	}

	for _, id := range fd.Selection {
		l, ok := layers[id]
		if !ok {
			return nil, fmt.Errorf("memdoc: selection names unknown layer %q", id)
		}
		d.selection = append(d.selection, l)
	}

	for _, fu := range fd.Undo {
		g := &undoGroup{name: fu.Name}
		for _, e := range fu.Entries {
			l, ok := layers[e.Layer]
			if !ok || e.Index < 0 || e.Index >= len(l.components) {
				return nil, fmt.Errorf("memdoc: undo entry for unknown component %s[%d]", e.Layer, e.Index)
			}
			t, ok := glyphfix.FromSlice(e.Before)
			if !ok {
				return nil, fmt.Errorf("memdoc: undo entry %s[%d]: transform needs 6 values", e.Layer, e.Index)
			}
			g.entries = append(g.entries, undoEntry{comp: l.components[e.Index], before: t})
		}
		d.undo = append(d.undo, g)
	}
	return d, nil
}

func snapshot(d *Document) *fileDoc {
	fd := &fileDoc{CurrentMaster: d.current}
	for _, m := range d.masters {
		fd.Masters = append(fd.Masters, fileMaster{ID: m.ID, Name: m.Name})
	}
	for _, g := range d.glyphs {
		export := g.export
		fg := fileGlyph{Name: g.name, Export: &export}
		for _, l := range g.order {
			fl := fileLayer{Master: l.master, Name: l.name}
			if l.bounds != nil {
				fl.Bounds = []float64{l.bounds.MinX, l.bounds.MinY, l.bounds.MaxX, l.bounds.MaxY}
			}
			for _, c := range l.components {
				v := c.t.Values()
				fl.Components = append(fl.Components, fileComponent{Base: c.base, Transform: v[:]})
			}
			fg.Layers = append(fg.Layers, fl)
		}
		fd.Glyphs = append(fd.Glyphs, fg)
	}
	for _, l := range d.selection {
		fd.Selection = append(fd.Selection, l.id)
	}
	for _, g := range d.undo {
		fu := fileUndoGroup{Name: g.name}
		for _, e := range g.entries {
			if e.comp.layer == nil {
				continue
			}
			v := e.before.Values()
			fu.Entries = append(fu.Entries, fileUndoEntry{
				Layer:  e.comp.layer.id,
				Index:  e.comp.layer.indexOf(e.comp),
				Before: v[:],
			})
		}
		if len(fu.Entries) > 0 {
			fd.Undo = append(fd.Undo, fu)
		}
	}
	return fd
}
