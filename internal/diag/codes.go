package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadDate            Code = 1003
	LexBadNumber          Code = 1004

	// Структурные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynOrphanSubLine      Code = 2003
	SynExpectMetaKey      Code = 2004
	SynExpectAccount      Code = 2005
	SynExpectCurrency     Code = 2006
	SynExpectAmount       Code = 2007
	SynExpectDirective    Code = 2008
	SynUnclosedCost       Code = 2009
	SynUnclosedParen      Code = 2010
	SynExpectEndOfLine    Code = 2011

	// Файлы
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOBackupError    Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadDate:            "Malformed date",
	LexBadNumber:          "Malformed number",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedTopLevel: "Unexpected top-level line",
	SynOrphanSubLine:      "Indented line outside of a directive",
	SynExpectMetaKey:      "Metadata entry without a key",
	SynExpectAccount:      "Expected account",
	SynExpectCurrency:     "Expected currency",
	SynExpectAmount:       "Expected amount",
	SynExpectDirective:    "Expected directive keyword",
	SynUnclosedCost:       "Unclosed cost specification",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynExpectEndOfLine:    "Expected end of line",
	IOLoadFileError:       "I/O load file error",
	IOWriteFileError:      "I/O write file error",
	IOBackupError:         "Backup creation failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// IsLex reports whether the code belongs to the lexical range.
func (c Code) IsLex() bool { return c >= 1000 && c < 2000 }

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
