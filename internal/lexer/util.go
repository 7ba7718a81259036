package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий байт как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune читает текущий байт как руну и перемещает курсор на размер руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

func isDec(b byte) bool   { return b >= '0' && b <= '9' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// isWordByte covers account components, currencies and keys. Bytes >= 0x80
// are accepted wholesale so that non-ASCII account names survive untouched.
func isWordByte(b byte) bool {
	return isUpper(b) || isLower(b) || isDec(b) || b >= utf8.RuneSelf ||
		b == ':' || b == '-' || b == '_' || b == '\'' || b == '.'
}

func isKeyByte(b byte) bool {
	return isUpper(b) || isLower(b) || isDec(b) || b == '-' || b == '_'
}

// флаги транзакций и проводок кроме '*' и '!'
func isFlagByte(b byte) bool {
	switch b {
	case '&', '#', '?', '%', 'P', 'S', 'T', 'C', 'U', 'R', 'M':
		return true
	}
	return false
}

// теги и ссылки: #[A-Za-z0-9_/.-]+
func isTagByte(b byte) bool {
	return isUpper(b) || isLower(b) || isDec(b) || b == '-' || b == '_' || b == '/' || b == '.'
}
