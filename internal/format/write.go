package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output and tracks the display column of the
// current line so amounts can be padded to a target column.
type Writer struct {
	buf []byte
	col int
}

// NewWriter creates a new formatting writer.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString writes s, updating the column. s may contain newlines
// (multi-line strings); the column restarts after the last one.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(s[i+1:])
		return
	}
	w.col += runewidth.StringWidth(s)
}

// Space writes a single space unless the line is empty or already ends
// with one.
func (w *Writer) Space() {
	if w.col == 0 || w.buf[len(w.buf)-1] == ' ' {
		return
	}
	w.buf = append(w.buf, ' ')
	w.col++
}

// Spaces writes n spaces.
func (w *Writer) Spaces(n int) {
	for range n {
		w.buf = append(w.buf, ' ')
	}
	w.col += max(n, 0)
}

// PadTo writes spaces until the display column reaches col, and at least
// one space.
func (w *Writer) PadTo(col int) {
	w.Spaces(max(col-w.col, 1))
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.col = 0
}

// Column returns the display column of the next byte.
func (w *Writer) Column() int {
	return w.col
}
