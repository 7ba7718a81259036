// Package testkit holds structural checks shared by unit and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"beanfmt/internal/source"
	"beanfmt/internal/token"
)

// CheckTokenInvariants runs the invariants every lexer output must satisfy:
// 1) the stream ends with exactly one EOF, placed at the end of the content
// 2) spans belong to sf, are in order and never overlap
// 3) every token's Text is the exact source slice under its span
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) EOF
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, want EOF", last.Kind)
	}
	if last.Span.Start != lenContent {
		return fmt.Errorf("EOF at %d, content ends at %d", last.Span.Start, lenContent)
	}

	var prevEnd uint32
	for i, tok := range toks {
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at index %d before the end of the stream", i)
		}
		// 2) spans
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d: span %v out of bounds", i, sp)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		// 3) text
		if raw := string(sf.Content[sp.Start:sp.End]); raw != tok.Text {
			return fmt.Errorf("token %d: text %q differs from source %q", i, tok.Text, raw)
		}
	}
	return nil
}
