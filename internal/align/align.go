// Package align computes the amount column of every alignment scope.
//
// A scope is a maximal run of amount-bearing lines not separated by a blank
// line, a section header or a column-zero comment. Detached comments,
// metadata, tag lines and directives without amounts neither contribute to
// nor break a scope.
package align

import (
	"strings"

	"beanfmt/internal/ast"

	"github.com/mattn/go-runewidth"
)

type Options struct {
	IndentWidth int // spaces per nesting level
	Padding     int // minimum gap between label and amount
}

func DefaultOptions() Options {
	return Options{IndentWidth: 2, Padding: 2}
}

// Table maps LineID to the display column where the amount starts.
type Table struct {
	cols []int
}

// Column returns the amount column for id, or 0 for NoLine / unknown ids.
func (t Table) Column(id ast.LineID) int {
	if int(id) >= len(t.cols) {
		return 0
	}
	return t.cols[id]
}

// Len returns the number of lines the table has columns for.
func (t Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols) - 1
}

type scope struct {
	lines []ast.LineID
	width int
}

func (s *scope) add(id ast.LineID, width int) {
	s.lines = append(s.lines, id)
	s.width = max(s.width, width)
}

// Compute walks doc top to bottom and assigns each scope one column:
// the widest indent+label plus Padding.
func Compute(doc *ast.Document, opts Options) Table {
	t := Table{cols: make([]int, doc.AmountLines+1)}
	var cur scope
	flush := func() {
		for _, id := range cur.lines {
			t.cols[id] = cur.width + opts.Padding
		}
		cur.lines = cur.lines[:0]
		cur.width = 0
	}

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case *ast.BlankLines, *ast.SectionHeader, *ast.CommentLine:
			flush()
		case *ast.Directive:
			if b.HasAmount() {
				cur.add(b.Line, LabelWidth(HeaderLabel(b)))
			}
			for _, sl := range b.Sub {
				p, ok := sl.(*ast.Posting)
				if !ok || !p.HasAmount() {
					continue
				}
				cur.add(p.Line, p.Level*opts.IndentWidth+LabelWidth(PostingLabel(p)))
			}
		}
	}
	flush()
	return t
}

// PostingLabel is the text before the amount: optional flag and account.
func PostingLabel(p *ast.Posting) string {
	if p.Flag.Valid() {
		return p.Flag.Text + " " + p.Account.Text
	}
	return p.Account.Text
}

// HeaderLabel is the text before the amount of a balance or price header.
func HeaderLabel(d *ast.Directive) string {
	parts := make([]string, 0, 3)
	for _, tok := range [...]string{d.Date.Text, d.Keyword.Text, d.Subject.Text} {
		if tok != "" {
			parts = append(parts, tok)
		}
	}
	return strings.Join(parts, " ")
}

// LabelWidth measures terminal display width so that wide account names
// still line up.
func LabelWidth(s string) int {
	return runewidth.StringWidth(s)
}
