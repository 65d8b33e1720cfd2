package glyphfix

import (
	"fmt"
	"strconv"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Scope selects which layers a run scans.
type Scope int

const (
	// ScopeSelectedLayers scans the literal layer selection.
	ScopeSelectedLayers Scope = iota
	// ScopeSelectedGlyphs scans every master layer of the selected glyphs.
	ScopeSelectedGlyphs
	// ScopeAllExportable scans every master layer of every exportable glyph.
	ScopeAllExportable
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeSelectedLayers:
		return "selected-layers"
	case ScopeSelectedGlyphs:
		return "selected-glyphs"
	case ScopeAllExportable:
		return "all-exportable"
	default:
		return unknownStr
	}
}

// ParseScope parses the String form of a Scope.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "selected-layers", "layers":
		return ScopeSelectedLayers, nil
	case "selected-glyphs", "glyphs":
		return ScopeSelectedGlyphs, nil
	case "all-exportable", "exportable", "all":
		return ScopeAllExportable, nil
	}
	return 0, &UserInputError{Field: "scope", Reason: fmt.Sprintf("unknown scope %q", s)}
}

// MasterScope selects which masters a glyph scope expands to.
// It is ignored for ScopeSelectedLayers.
type MasterScope int

const (
	// MasterCurrent uses the document's current master only.
	MasterCurrent MasterScope = iota
	// MasterAll uses every master in document order.
	MasterAll
)

// String returns the string representation of the master scope.
func (m MasterScope) String() string {
	switch m {
	case MasterCurrent:
		return "current"
	case MasterAll:
		return "all"
	default:
		return unknownStr
	}
}

// ParseMasterScope parses the String form of a MasterScope.
func ParseMasterScope(s string) (MasterScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return MasterCurrent, nil
	case "all":
		return MasterAll, nil
	}
	return 0, &UserInputError{Field: "masters", Reason: fmt.Sprintf("unknown master scope %q", s)}
}

// Method selects which flip the mirror planner may use.
type Method int

const (
	// MethodAuto picks the flip that moves the component least.
	MethodAuto Method = iota
	// MethodVerticalOnly only flips the y basis row.
	MethodVerticalOnly
	// MethodHorizontalOnly only flips the x basis row.
	MethodHorizontalOnly
)

// String returns the string representation of the method.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodVerticalOnly:
		return "vertical"
	case MethodHorizontalOnly:
		return "horizontal"
	default:
		return unknownStr
	}
}

// ParseMethod parses the String form of a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return MethodAuto, nil
	case "vertical", "vertical-only", "y":
		return MethodVerticalOnly, nil
	case "horizontal", "horizontal-only", "x":
		return MethodHorizontalOnly, nil
	}
	return 0, &UserInputError{Field: "method", Reason: fmt.Sprintf("unknown method %q", s)}
}

// Anchor is the bounding-box point held fixed by a mirror correction.
type Anchor int

const (
	// AnchorBottomLeft keeps (minX, minY) in place.
	AnchorBottomLeft Anchor = iota
	// AnchorCenter keeps the box center in place.
	AnchorCenter
)

// String returns the string representation of the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorCenter:
		return "center"
	default:
		return unknownStr
	}
}

// ParseAnchor parses the String form of an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom-left", "bottomleft":
		return AnchorBottomLeft, nil
	case "center", "centre":
		return AnchorCenter, nil
	}
	return 0, &UserInputError{Field: "anchor", Reason: fmt.Sprintf("unknown anchor %q", s)}
}

// Mode is the closed set of correction tools: GridMode or MirrorMode.
type Mode interface {
	// Name is the tool name used in logs and summaries.
	Name() string
	// Validate checks the mode's parameters.
	Validate() error

	detector() Detector
	params() string
}

// GridMode snaps component translation to a grid.
type GridMode struct {
	// Step is the grid increment. Must be > 0.
	Step float64
	// Tolerance limits snapping to values within ±Tolerance of a gridline.
	// Zero snaps every off-grid value. Must be >= 0.
	Tolerance float64
}

// Name implements Mode.
func (GridMode) Name() string { return "grid-snap" }

// Validate implements Mode.
func (m GridMode) Validate() error {
	if !(m.Step > 0) {
		return &UserInputError{Field: "step", Reason: "step must be > 0"}
	}
	if !(m.Tolerance >= 0) {
		return &UserInputError{Field: "tolerance", Reason: "tolerance must be >= 0"}
	}
	return nil
}

func (m GridMode) detector() Detector {
	return GridOffset{Step: m.Step, Tolerance: m.Tolerance}
}

func (m GridMode) params() string {
	return "step=" + formatFloat(m.Step) + " tolerance=" + formatFloat(m.Tolerance)
}

// MirrorMode removes reflection from mirrored components.
type MirrorMode struct {
	Method Method
	Anchor Anchor
}

// Name implements Mode.
func (MirrorMode) Name() string { return "mirror-mend" }

// Validate implements Mode.
func (m MirrorMode) Validate() error {
	if m.Method.String() == unknownStr {
		return &UserInputError{Field: "method", Reason: fmt.Sprintf("unknown method %d", int(m.Method))}
	}
	if m.Anchor.String() == unknownStr {
		return &UserInputError{Field: "anchor", Reason: fmt.Sprintf("unknown anchor %d", int(m.Anchor))}
	}
	return nil
}

func (MirrorMode) detector() Detector {
	return MirrorReflection{}
}

func (m MirrorMode) params() string {
	return "method=" + m.Method.String() + " anchor=" + m.Anchor.String()
}

// Settings is the full configuration of one Preview or Apply run.
type Settings struct {
	Scope   Scope
	Masters MasterScope
	Mode    Mode
}

// Validate checks scope selectors and mode parameters.
func (s Settings) Validate() error {
	if s.Scope.String() == unknownStr {
		return &UserInputError{Field: "scope", Reason: fmt.Sprintf("unknown scope %d", int(s.Scope))}
	}
	if s.Masters.String() == unknownStr {
		return &UserInputError{Field: "masters", Reason: fmt.Sprintf("unknown master scope %d", int(s.Masters))}
	}
	if s.Mode == nil {
		return &UserInputError{Field: "mode", Reason: "no correction mode selected"}
	}
	return s.Mode.Validate()
}

// formatFloat prints v with the fewest digits that round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
