package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headerStyle = color.New(color.Bold)
	glyphStyle  = color.New(color.FgCyan, color.Bold)
	okStyle     = color.New(color.FgGreen)
	warnStyle   = color.New(color.FgYellow)
	errorStyle  = color.New(color.FgRed)
)

// printReport writes a preview report, coloring it line by line.
func printReport(w io.Writer, report string) {
	for _, line := range strings.Split(strings.TrimSuffix(report, "\n"), "\n") {
		if style := styleFor(line); style != nil {
			line = style.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

// styleFor returns nil for lines printed as is.
func styleFor(line string) *color.Color {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return nil
	case strings.HasPrefix(trimmed, "/"):
		return glyphStyle
	case strings.Contains(trimmed, "(unfixable:"), strings.Contains(trimmed, "(unreadable:"):
		return errorStyle
	case strings.HasPrefix(trimmed, "- "):
		return nil
	case strings.HasPrefix(trimmed, "Not fixable:"):
		return warnStyle
	case strings.HasPrefix(trimmed, "No "):
		return okStyle
	default:
		return headerStyle
	}
}
