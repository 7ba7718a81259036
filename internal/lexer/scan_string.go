package lexer

import (
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// scanString сканирует "..." с escape-последовательностями как есть.
// Перевод строки внутри строки допустим; незакрытая строка считается ошибкой.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.emit(token.String, start)
		case '\\':
			// escape не интерпретируем, только пропускаем следующий байт
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string")
	return tok
}
