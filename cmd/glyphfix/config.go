package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/gogpu/glyphfix"
)

// fileConfig is the --config file. Flags given on the command line
// override its values.
//
//	scope = "all"
//	masters = "all"
//	mode = "grid"
//
//	[grid]
//	step = 10
//	tolerance = 2
//
//	[mirror]
//	method = "auto"
//	anchor = "center"
//
//	[fonts]
//	m1 = "Regular.otf"
type fileConfig struct {
	Scope    string            `toml:"scope"`
	Masters  string            `toml:"masters"`
	Mode     string            `toml:"mode"`
	Grid     gridConfig        `toml:"grid"`
	Mirror   mirrorConfig      `toml:"mirror"`
	Fonts    map[string]string `toml:"fonts"`
	Variable string            `toml:"variable"`
	// Locations maps master ids to "wght=700,wdth=100" style coordinates.
	Locations map[string]string `toml:"locations"`
}

type gridConfig struct {
	Step      float64 `toml:"step"`
	Tolerance float64 `toml:"tolerance"`
}

type mirrorConfig struct {
	Method string `toml:"method"`
	Anchor string `toml:"anchor"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		Scope:   "selected-layers",
		Masters: "current",
		Mode:    "grid",
		Grid:    gridConfig{Step: 10},
		Mirror:  mirrorConfig{Method: "auto", Anchor: "bottom-left"},
	}
}

func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// addRunFlags registers the flags shared by preview and apply.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "TOML settings file")
	f.String("scope", "", "selected-layers, selected-glyphs or all")
	f.String("masters", "", "current or all")
	f.String("mode", "", "grid or mirror")
	f.Float64("step", 0, "grid step")
	f.Float64("tolerance", 0, "snap only values within ±tolerance of a gridline (0 snaps everything)")
	f.String("method", "", "mirror fix: auto, vertical or horizontal")
	f.String("anchor", "", "mirror anchor: bottom-left or center")
	f.StringArray("font", nil, "master=path of a static font supplying base glyph bounds (repeatable)")
	f.String("variable", "", "variable font supplying base glyph bounds")
	f.StringArray("location", nil, "master=tag=value,... design-space location for --variable (repeatable)")
}

// overrideFromFlags copies every flag the user set onto cfg.
func overrideFromFlags(cmd *cobra.Command, cfg *fileConfig) error {
	f := cmd.Flags()
	strs := map[string]*string{
		"scope":    &cfg.Scope,
		"masters":  &cfg.Masters,
		"mode":     &cfg.Mode,
		"method":   &cfg.Mirror.Method,
		"anchor":   &cfg.Mirror.Anchor,
		"variable": &cfg.Variable,
	}
	for name, dst := range strs {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	floats := map[string]*float64{
		"step":      &cfg.Grid.Step,
		"tolerance": &cfg.Grid.Tolerance,
	}
	for name, dst := range floats {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetFloat64(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if f.Changed("font") {
		pairs, err := f.GetStringArray("font")
		if err != nil {
			return err
		}
		if cfg.Fonts == nil {
			cfg.Fonts = make(map[string]string)
		}
		for _, p := range pairs {
			id, path, ok := strings.Cut(p, "=")
			if !ok || id == "" || path == "" {
				return fmt.Errorf("invalid --font %q (want master=path)", p)
			}
			cfg.Fonts[id] = path
		}
	}
	if f.Changed("location") {
		pairs, err := f.GetStringArray("location")
		if err != nil {
			return err
		}
		if cfg.Locations == nil {
			cfg.Locations = make(map[string]string)
		}
		for _, p := range pairs {
			id, loc, ok := strings.Cut(p, "=")
			if !ok || id == "" {
				return fmt.Errorf("invalid --location %q (want master=tag=value,...)", p)
			}
			cfg.Locations[id] = loc
		}
	}
	return nil
}

// settings turns the merged configuration into engine settings.
func (cfg fileConfig) settings() (glyphfix.Settings, error) {
	scope, err := glyphfix.ParseScope(cfg.Scope)
	if err != nil {
		return glyphfix.Settings{}, err
	}
	masters, err := glyphfix.ParseMasterScope(cfg.Masters)
	if err != nil {
		return glyphfix.Settings{}, err
	}
	s := glyphfix.Settings{Scope: scope, Masters: masters}

	switch strings.ToLower(cfg.Mode) {
	case "grid", "grid-snap", "snap":
		s.Mode = glyphfix.GridMode{Step: cfg.Grid.Step, Tolerance: cfg.Grid.Tolerance}
	case "mirror", "mirror-mend", "mend":
		method, err := glyphfix.ParseMethod(cfg.Mirror.Method)
		if err != nil {
			return glyphfix.Settings{}, err
		}
		anchor, err := glyphfix.ParseAnchor(cfg.Mirror.Anchor)
		if err != nil {
			return glyphfix.Settings{}, err
		}
		s.Mode = glyphfix.MirrorMode{Method: method, Anchor: anchor}
	default:
		return glyphfix.Settings{}, &glyphfix.UserInputError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", cfg.Mode)}
	}
	return s, s.Validate()
}

// parseLocation parses "wght=700,wdth=100".
func parseLocation(s string) (map[string]float32, error) {
	loc := make(map[string]float32)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, val, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid axis coordinate %q (want tag=value)", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 32)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", tag, err)
		}
		loc[strings.TrimSpace(tag)] = float32(v)
	}
	if len(loc) == 0 {
		return nil, fmt.Errorf("empty location %q", s)
	}
	return loc, nil
}
