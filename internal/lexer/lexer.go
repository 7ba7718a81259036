package lexer

import (
	"unicode/utf8"

	"beanfmt/internal/diag"
	"beanfmt/internal/source"
	"beanfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	prev   token.Kind // вид последнего выданного токена, для классификации флагов
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Newline,
	}
}

// Tokenize lexes the whole file. The result always ends with an EOF token.
// Errors go to reporter; the offending bytes come back as Invalid tokens.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, Options{Reporter: reporter})
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.scan()
	lx.prev = tok.Kind
	return tok
}

func (lx *Lexer) scan() token.Token {
	// 1) начало строки: отступ или пустая строка
	if lx.atLineStart() {
		if tok, ok := lx.scanIndent(); ok {
			return tok
		}
	} else {
		lx.cursor.BumpWhile(isBlank)
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	if lx.atFlag(ch) {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Flag, start)
	}
	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Newline, start)
	case ch == ';':
		return lx.scanComment()
	case ch == '*' && lx.cursor.Prev() == '\n':
		return lx.scanSection()
	case isDec(ch):
		if lx.isDateAhead() {
			return lx.scanDate()
		}
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '#' || ch == '^':
		return lx.scanTagOrLink()
	case isLower(ch):
		return lx.scanLowerWord()
	case isUpper(ch) || ch >= utf8.RuneSelf:
		return lx.scanUpperWord()
	default:
		return lx.scanPunct()
	}
}

// atFlag: одиночный символ флага сразу после даты или отступа.
// '*' и '!' разбирает scanPunct, остальным нужен пробел или конец строки
// следом, иначе "P" не отличить от начала слова.
func (lx *Lexer) atFlag(ch byte) bool {
	if lx.prev != token.Date && lx.prev != token.Indent {
		return false
	}
	if !isFlagByte(ch) {
		return false
	}
	next := lx.cursor.PeekAt(1)
	return isBlank(next) || next == '\n' || lx.cursor.Off+1 >= lx.cursor.Limit
}

// atLineStart сообщает, стоит ли курсор в начале физической строки.
func (lx *Lexer) atLineStart() bool {
	return lx.cursor.Prev() == '\n' && lx.prev != token.Indent
}

// scanIndent eats leading whitespace. Whitespace-only lines produce nothing
// here so the following Newline marks a blank line.
func (lx *Lexer) scanIndent() (token.Token, bool) {
	start := lx.cursor.Mark()
	if lx.cursor.BumpWhile(isBlank) == 0 {
		return token.Token{}, false
	}
	if b := lx.cursor.Peek(); b == '\n' || lx.cursor.EOF() {
		return token.Token{}, false
	}
	return lx.emit(token.Indent, start), true
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
