package glyphfix

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// summaryPrinter formats counts with digit grouping for log lines.
var summaryPrinter = message.NewPrinter(language.English)

// Summary returns a one-line description of a run's settings and result,
// suitable for a log or a status bar.
func Summary(s Settings, r Result) string {
	name, params := "glyphfix", ""
	if s.Mode != nil {
		name, params = s.Mode.Name(), " "+s.Mode.params()
	}
	line := summaryPrinter.Sprintf("%s scope=%s masters=%s%s scanned=%d fixed=%d skipped=%d failed=%d unfixable=%d",
		name, s.Scope, s.Masters, params, r.Scanned, r.Fixed, r.Skipped, r.Failed, r.Unfixable)
	if r.Aborted {
		line += summaryPrinter.Sprintf(" aborted remaining=%d", r.Remaining)
	}
	return line
}
