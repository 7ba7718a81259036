package diag

import (
	"fmt"

	"beanfmt/internal/source"
)

// LexError is returned when the input cannot be tokenized.
type LexError struct {
	Path    string
	Line    uint32
	Column  uint32
	Code    Code
	Message string
}

func (e *LexError) Error() string {
	return positioned(e.Path, e.Line, e.Column, "lex error", e.Message)
}

// ParseError is returned when the token stream does not form a valid document.
type ParseError struct {
	Path    string
	Line    uint32
	Column  uint32
	Code    Code
	Message string
}

func (e *ParseError) Error() string {
	return positioned(e.Path, e.Line, e.Column, "parse error", e.Message)
}

func positioned(path string, line, col uint32, kind, msg string) string {
	if path == "" {
		return fmt.Sprintf("%s at %d:%d: %s", kind, line, col, msg)
	}
	return fmt.Sprintf("%s: %s at %d:%d: %s", path, kind, line, col, msg)
}

// FirstError converts the first error of bag into a *LexError or *ParseError.
// It returns nil when the bag holds no errors.
func FirstError(bag *Bag, fs *source.FileSet) error {
	if bag == nil {
		return nil
	}
	d, ok := bag.FirstError()
	if !ok {
		return nil
	}
	var (
		path      string
		line, col uint32
	)
	if fs != nil {
		start, _ := fs.Resolve(d.Primary)
		line, col = start.Line, start.Col
		if f := fs.Get(d.Primary.File); f != nil && f.Flags&source.FileVirtual == 0 {
			path = fs.RelPath(d.Primary.File)
		}
	}
	if d.Code.IsLex() {
		return &LexError{Path: path, Line: line, Column: col, Code: d.Code, Message: d.Message}
	}
	return &ParseError{Path: path, Line: line, Column: col, Code: d.Code, Message: d.Message}
}
