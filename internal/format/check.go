package format

import (
	"bytes"
	"slices"

	"beanfmt/internal/lexer"
	"beanfmt/internal/source"
	"beanfmt/internal/token"
)

// CheckIdempotent formats src, formats the result again and verifies that
// the second pass changes nothing and that no significant token was lost.
func CheckIdempotent(src []byte, opt Options) (ok bool, msg string) {
	once, err := Format(src, opt)
	if err != nil {
		return false, "fmt-check: initial format failed: " + err.Error()
	}
	twice, err := Format(once, opt)
	if err != nil {
		return false, "fmt-check: reformat failed: " + err.Error()
	}
	if !bytes.Equal(once, twice) {
		return false, "fmt-check: output is not stable under reformatting"
	}
	if !SameTokens(lex(src), lex(once)) {
		return false, "fmt-check: significant tokens differ after formatting"
	}
	return true, "fmt-check: OK"
}

func lex(src []byte) []token.Token {
	fs := source.NewFileSet()
	return lexer.Tokenize(fs.Get(fs.AddVirtual("<check>", src)), nil)
}

// SameTokens compares the significant tokens of two streams by kind and
// text. Tags and links on the same line may be reordered (tags first), so
// each run of them is compared in canonical order.
func SameTokens(a, b []token.Token) bool {
	sa, sb := significant(a), significant(b)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i].Kind != sb[i].Kind || sa[i].Text != sb[i].Text {
			return false
		}
	}
	return true
}

func significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsSignificant() {
			out = append(out, t)
		}
	}
	for i := 0; i < len(out); {
		if !isTagOrLink(out[i]) {
			i++
			continue
		}
		j := i
		for j < len(out) && isTagOrLink(out[j]) {
			j++
		}
		slices.SortStableFunc(out[i:j], func(x, y token.Token) int {
			return int(x.Kind) - int(y.Kind)
		})
		i = j
	}
	return out
}

func isTagOrLink(t token.Token) bool {
	return t.Kind == token.Tag || t.Kind == token.Link
}
