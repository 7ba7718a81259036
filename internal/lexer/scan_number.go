package lexer

import (
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// isDateAhead проверяет шаблон YYYY-MM-DD или YYYY/MM/DD без потребления.
func (lx *Lexer) isDateAhead() bool {
	c := &lx.cursor
	for i := uint32(0); i < 4; i++ {
		if !isDec(c.PeekAt(i)) {
			return false
		}
	}
	sep := c.PeekAt(4)
	if sep != '-' && sep != '/' {
		return false
	}
	return isDec(c.PeekAt(5)) && isDec(c.PeekAt(6)) &&
		c.PeekAt(7) == sep &&
		isDec(c.PeekAt(8)) && isDec(c.PeekAt(9)) &&
		!isDec(c.PeekAt(10))
}

// scanDate consumes exactly ten bytes already validated by isDateAhead.
// Calendar validity is checked so that typos fail early instead of being
// re-emitted as a number expression.
func (lx *Lexer) scanDate() token.Token {
	start := lx.cursor.Mark()
	for range 10 {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Date, start)
	if !isValidDate(tok.Text) {
		lx.errLex(diag.LexBadDate, tok.Span, "invalid date "+tok.Text)
		tok.Kind = token.Invalid
	}
	return tok
}

func isValidDate(date string) bool {
	year := int(date[0]-'0')*1000 + int(date[1]-'0')*100 + int(date[2]-'0')*10 + int(date[3]-'0')
	month := int(date[5]-'0')*10 + int(date[6]-'0')
	day := int(date[8]-'0')*10 + int(date[9]-'0')
	if year == 0 || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func daysInMonth(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// scanNumber сканирует [0-9]+(,[0-9]{3})*(\.[0-9]*)? или \.[0-9]+.
// "10." допустимо: точка без дробной части остаётся в тексте числа.
// Знак и арифметика: отдельные Punct токены.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	for {
		c.BumpWhile(isDec)
		// запятая допустима только перед группой ровно из трёх цифр
		if c.Peek() == ',' && isDec(c.PeekAt(1)) && isDec(c.PeekAt(2)) && isDec(c.PeekAt(3)) && !isDec(c.PeekAt(4)) {
			c.Bump()
			continue
		}
		break
	}
	if c.Peek() == '.' {
		c.Bump()
		c.BumpWhile(isDec)
	}
	return lx.emit(token.Number, start)
}
