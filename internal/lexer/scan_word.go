package lexer

import (
	"unicode/utf8"

	"beanfmt/internal/token"
)

// scanLowerWord сканирует ключ метаданных, ключевое слово или идентификатор.
// Слово, за которым сразу идёт ':', это ключ, и двоеточие входит в Text.
func (lx *Lexer) scanLowerWord() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isKeyByte)
	if lx.cursor.Eat(':') {
		return lx.emit(token.Key, start)
	}
	tok := lx.emit(token.Ident, start)
	if token.IsKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}

// scanUpperWord сканирует счёт (есть ':') или валюту.
// Хвостовые знаки пунктуации в слово не входят.
func (lx *Lexer) scanUpperWord() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	end := c.Off
	for !c.EOF() {
		b := c.Peek()
		if !isWordByte(b) {
			break
		}
		if b >= utf8.RuneSelf {
			lx.bumpRune()
			end = c.Off
			continue
		}
		c.Bump()
		if isUpper(b) || isLower(b) || isDec(b) {
			end = c.Off
		}
	}
	c.Off = end
	if c.Off == uint32(start) {
		// не буква: одиночный не-ASCII символ
		return lx.scanUnknown()
	}

	tok := lx.emit(token.Ident, start)
	switch {
	case hasColon(tok.Text):
		tok.Kind = token.Account
	case isCurrency(tok.Text):
		tok.Kind = token.Currency
	}
	return tok
}

func hasColon(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return true
		}
	}
	return false
}

// isCurrency: [A-Z][A-Z0-9'._-]*, последний символ буква или цифра.
func isCurrency(s string) bool {
	if s == "" || !isUpper(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !isUpper(b) && !isDec(b) && b != '\'' && b != '.' && b != '_' && b != '-' {
			return false
		}
	}
	return true
}
