package token

import (
	"beanfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token has kind k and, for Punct/Flag/Keyword, text s.
func (t Token) Is(k Kind, s string) bool {
	return t.Kind == k && t.Text == s
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(s string) bool { return t.Is(Punct, s) }

// IsOperator reports whether the token is a binary arithmetic operator or sign.
func (t Token) IsOperator() bool {
	if t.Kind != Punct {
		return false
	}
	switch t.Text {
	case "+", "-", "*", "/":
		return true
	default:
		return false
	}
}

// IsAmountStart reports whether the token may begin an amount expression.
func (t Token) IsAmountStart() bool {
	switch t.Kind {
	case Number:
		return true
	case Punct:
		return t.Text == "+" || t.Text == "-" || t.Text == "("
	default:
		return false
	}
}

// IsLineEnd reports whether the token terminates a physical line.
func (t Token) IsLineEnd() bool {
	return t.Kind == Newline || t.Kind == EOF
}

// IsSignificant reports whether the token carries content that must survive
// formatting. Layout tokens (Newline, Indent, EOF) are not significant.
func (t Token) IsSignificant() bool {
	switch t.Kind {
	case Newline, Indent, EOF, Invalid:
		return false
	default:
		return true
	}
}

// Valid reports whether the token is present. Optional fields of AST nodes
// hold the zero Token when absent.
func (t Token) Valid() bool { return t.Kind != Invalid }
