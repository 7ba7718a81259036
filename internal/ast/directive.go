package ast

import "beanfmt/internal/token"

type DirectiveKind uint8

const (
	DirTransaction DirectiveKind = iota
	DirBalance
	DirOpen
	DirClose
	DirCommodity
	DirPad
	DirNote
	DirDocument
	DirPrice
	DirEvent
	DirQuery
	DirCustom
	DirOption
	DirInclude
	DirPlugin
	DirPushtag
	DirPoptag
	DirPushmeta
	DirPopmeta
)

var directiveKeywords = [...]string{
	DirTransaction: "txn",
	DirBalance:     "balance",
	DirOpen:        "open",
	DirClose:       "close",
	DirCommodity:   "commodity",
	DirPad:         "pad",
	DirNote:        "note",
	DirDocument:    "document",
	DirPrice:       "price",
	DirEvent:       "event",
	DirQuery:       "query",
	DirCustom:      "custom",
	DirOption:      "option",
	DirInclude:     "include",
	DirPlugin:      "plugin",
	DirPushtag:     "pushtag",
	DirPoptag:      "poptag",
	DirPushmeta:    "pushmeta",
	DirPopmeta:     "popmeta",
}

func (k DirectiveKind) String() string {
	if int(k) < len(directiveKeywords) {
		return directiveKeywords[k]
	}
	return "unknown"
}

// Dated reports whether directives of this kind start with a date.
func (k DirectiveKind) Dated() bool {
	return k < DirOption
}

// LookupDirective maps a directive keyword to its kind.
func LookupDirective(word string) (DirectiveKind, bool) {
	for k, w := range directiveKeywords {
		if w == word {
			return DirectiveKind(k), true
		}
	}
	return 0, false
}

// Directive: датированная или недатированная запись верхнего уровня.
type Directive struct {
	Kind DirectiveKind
	Date token.Token // отсутствует у option/include/plugin/push*/pop*
	// Keyword is the directive word as written; for transactions it is only
	// present when the header uses "txn" instead of a flag.
	Keyword token.Token
	Flag    token.Token

	// Transaction header fields, each group in source order.
	Strings []token.Token
	Tags    []token.Token
	Links   []token.Token

	// Balance: Subject is the account. Price: Subject is the commodity.
	Subject token.Token
	Amount  *Amount

	// Args holds the remaining header tokens of every other kind, raw.
	Args []token.Token

	Comment token.Token
	Sub     []SubLine
	// Line is set for balance and price headers, which carry an amount.
	Line LineID
}

// HasAmount reports whether the header line takes part in alignment.
func (d *Directive) HasAmount() bool {
	return d.Line != NoLine
}
