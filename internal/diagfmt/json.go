package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"beanfmt/internal/diag"
	"beanfmt/internal/source"
)

// NoteJSON: дополнительная заметка к диагностике.
type NoteJSON struct {
	File    string `json:"file"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
	Message string `json:"message"`
}

// DiagnosticJSON is one diagnostic with 1-based positions. Offset is the
// byte offset of the primary span.
type DiagnosticJSON struct {
	File      string     `json:"file"`
	Line      uint32     `json:"line"`
	Column    uint32     `json:"column"`
	EndLine   uint32     `json:"end_line"`
	EndColumn uint32     `json:"end_column"`
	Offset    uint32     `json:"offset"`
	Severity  string     `json:"severity"`
	Code      string     `json:"code"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Notes     []NoteJSON `json:"notes,omitempty"`
}

// Report collects diagnostics of one or more files.
type Report struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	// Truncated counts diagnostics dropped because of JSONOpts.Max.
	Truncated int `json:"truncated,omitempty"`
}

// Add appends the items of bag, respecting opts.Max across every Add.
func (r *Report) Add(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		if opts.Max > 0 && len(r.Diagnostics) >= opts.Max {
			r.Truncated++
			continue
		}
		start, end := fs.Resolve(d.Primary)
		item := DiagnosticJSON{
			File:      displayPath(fs, d.Primary.File, opts.PathMode),
			Line:      start.Line,
			Column:    start.Col,
			EndLine:   end.Line,
			EndColumn: end.Col,
			Offset:    d.Primary.Start,
			Severity:  strings.ToLower(d.Severity.String()),
			Code:      d.Code.ID(),
			Title:     d.Code.Title(),
			Message:   d.Message,
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				ns, _ := fs.Resolve(n.Span)
				item.Notes = append(item.Notes, NoteJSON{
					File:    displayPath(fs, n.Span.File, opts.PathMode),
					Line:    ns.Line,
					Column:  ns.Col,
					Message: n.Msg,
				})
			}
		}
		r.Diagnostics = append(r.Diagnostics, item)
	}
	r.Count = len(r.Diagnostics)
}

// Encode writes the report as indented JSON. Diagnostics is never null.
func (r *Report) Encode(w io.Writer) error {
	if r.Diagnostics == nil {
		r.Diagnostics = []DiagnosticJSON{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// JSON writes the diagnostics of a single bag.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	var r Report
	r.Add(bag, fs, opts)
	return r.Encode(w)
}
