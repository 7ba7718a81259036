package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"beanfmt/internal/source"
)

type shortLine struct {
	sev     string
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

// FormatShortDiagnostics renders one line per diagnostic (and per note when
// includeNotes), sorted by position:
//
//	error SYN2003 ledger/main.bean:3:1 message
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]shortLine, 0, len(diags))
	at := func(sev string, code Code, sp source.Span, msg string) {
		start, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			sev:     sev,
			code:    code.ID(),
			path:    fs.RelPath(sp.File),
			line:    start.Line,
			col:     start.Col,
			message: strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		at(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				at("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
		)
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.message)
	}
	return b.String()
}
