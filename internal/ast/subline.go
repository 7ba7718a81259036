package ast

import "beanfmt/internal/token"

// SubLine: строка с отступом, принадлежащая директиве.
// Depth is 1 for lines owned by the directive and 2 for lines owned by the
// preceding posting.
type SubLine interface {
	Depth() int
	subLine()
}

// Amount is an unevaluated expression followed by an optional tolerance
// ("~ expr") and an optional currency.
type Amount struct {
	Expr      []token.Token
	Tolerance []token.Token
	Currency  token.Token
}

// Empty reports whether neither a number nor a currency is present.
func (a *Amount) Empty() bool {
	return a == nil || (len(a.Expr) == 0 && !a.Currency.Valid())
}

type Price struct {
	Op     token.Token // "@" или "@@"
	Amount *Amount
}

type Posting struct {
	Level   int
	Flag    token.Token
	Account token.Token
	Amount  *Amount
	// Cost is the raw "{...}" or "{{...}}" span including the braces.
	Cost    []token.Token
	Price   *Price
	Comment token.Token
	Line    LineID
}

// Metadata is a "key: value" entry. Value is raw and may be empty.
type Metadata struct {
	Level   int
	Key     token.Token
	Value   []token.Token
	Comment token.Token
}

// DetachedComment is an indented comment on its own line.
type DetachedComment struct {
	Level   int
	Comment token.Token
}

// TagLine is an indented line of tags and links continuing a header.
type TagLine struct {
	Level   int
	Items   []token.Token
	Comment token.Token
}

func (p *Posting) Depth() int         { return p.Level }
func (m *Metadata) Depth() int        { return m.Level }
func (c *DetachedComment) Depth() int { return c.Level }
func (t *TagLine) Depth() int         { return t.Level }

func (*Posting) subLine()         {}
func (*Metadata) subLine()        {}
func (*DetachedComment) subLine() {}
func (*TagLine) subLine()         {}

// HasAmount reports whether the posting takes part in alignment.
func (p *Posting) HasAmount() bool {
	return p.Line != NoLine
}
