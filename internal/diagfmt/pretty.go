package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"beanfmt/internal/diag"
	"beanfmt/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs.Get(d.Primary.File), start, end, int(opts.Context), pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int, pal palette) {
	if f == nil || start.Line == 0 {
		return
	}
	ctx := uint32(max(context, 0)) //nolint:gosec // context is an int8 option
	first := max(start.Line, ctx+1) - ctx
	last := min(start.Line+ctx, uint32(len(f.LineIdx))+1) //nolint:gosec // line count fits the index type
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\r")
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), caretLine(text, start, end, pal))
	}
}

// caretLine builds "   ^~~~" under the span, measuring display width so
// that carets stay under wide characters.
func caretLine(text string, start, end source.LineCol, pal palette) string {
	col := int(start.Col) - 1
	col = min(max(col, 0), len(text))
	prefix := runewidth.StringWidth(text[:col])

	width := 1
	if end.Line == start.Line && int(end.Col) > int(start.Col) {
		stop := min(int(end.Col)-1, len(text))
		width = max(runewidth.StringWidth(text[col:stop]), 1)
	}
	return strings.Repeat(" ", prefix) + pal.caret.Sprint("^"+strings.Repeat("~", width-1))
}
