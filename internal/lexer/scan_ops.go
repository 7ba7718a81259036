package lexer

import (
	"fmt"

	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// scanPunct распознаёт флаги и пунктуацию. Жадность: "{{", "}}", "@@".
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	switch b := c.Bump(); b {
	case '!':
		return lx.emit(token.Flag, start)
	case '*':
		// флаг только сразу после даты или отступа, иначе умножение
		if lx.prev == token.Date || lx.prev == token.Indent {
			return lx.emit(token.Flag, start)
		}
		return lx.emit(token.Punct, start)
	case '{', '}', '@':
		c.Eat(b)
		return lx.emit(token.Punct, start)
	case '+', '-', '/', '(', ')', ',', '~', ':':
		return lx.emit(token.Punct, start)
	}
	c.Reset(start)
	return lx.scanUnknown()
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", r))
	return tok
}

func (lx *Lexer) scanTagOrLink() token.Token {
	start := lx.cursor.Mark()
	kind := token.Tag
	if lx.cursor.Bump() == '^' {
		kind = token.Link
	}
	if lx.cursor.BumpWhile(isTagByte) == 0 {
		if kind == token.Tag {
			// одиночный '#' в составной цене: {10 # 5 USD}
			return lx.emit(token.Punct, start)
		}
		lx.cursor.Reset(start)
		return lx.scanUnknown()
	}
	return lx.emit(kind, start)
}

// scanComment: от ';' до конца строки, хвостовые пробелы отбрасываются.
func (lx *Lexer) scanComment() token.Token {
	return lx.scanRestOfLine(token.Comment)
}

// scanSection: '*' в нулевой колонке, вся строка: заголовок раздела.
func (lx *Lexer) scanSection() token.Token {
	return lx.scanRestOfLine(token.Section)
}

func (lx *Lexer) scanRestOfLine(k token.Kind) token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	end := c.Off
	for !c.EOF() && c.Peek() != '\n' {
		if !isBlank(c.Bump()) {
			end = c.Off
		}
	}
	c.Off = end
	tok := lx.emit(k, start)
	c.BumpWhile(isBlank)
	return tok
}
