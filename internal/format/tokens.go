package format

import "beanfmt/internal/token"

// writeTokens writes a raw token run with canonical spacing:
//   - binary operators get one space on each side, unary signs none after;
//   - nothing just inside ( ) { } {{ }} and nothing before ',';
//   - ':' glues both neighbours (times like 10:30);
//   - everything else is separated by one space.
func (w *Writer) writeTokens(toks []token.Token) {
	for i, tok := range toks {
		if i > 0 && spaceBetween(toks, i) {
			w.Spaces(1)
		}
		w.WriteString(tok.Text)
	}
}

// spaceBetween decides whether toks[i] is separated from toks[i-1].
func spaceBetween(toks []token.Token, i int) bool {
	prev, cur := toks[i-1], toks[i]
	switch {
	case isOpener(prev), isCloser(cur), cur.IsPunct(","):
		return false
	case prev.IsPunct(":"), cur.IsPunct(":"):
		return false
	case prev.IsOperator():
		// после унарного знака пробела нет
		return !isUnary(toks, i-1)
	}
	return true
}

// isUnary reports whether the operator at toks[i] is a sign rather than a
// binary operator: it is binary only after an operand.
func isUnary(toks []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := toks[i-1]
	return prev.Kind != token.Number && !prev.IsPunct(")")
}

func isOpener(t token.Token) bool {
	return t.IsPunct("(") || t.IsPunct("{") || t.IsPunct("{{")
}

func isCloser(t token.Token) bool {
	return t.IsPunct(")") || t.IsPunct("}") || t.IsPunct("}}")
}
