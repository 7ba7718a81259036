package format

import (
	"beanfmt/internal/align"
	"beanfmt/internal/ast"
	"beanfmt/internal/token"
)

type printer struct {
	w     *Writer
	table align.Table
	opt   Options
}

// Render writes doc in canonical form. It cannot fail: every Document the
// parser accepts has exactly one rendering.
func Render(doc *ast.Document, table align.Table, opt Options) []byte {
	opt = opt.withDefaults()
	p := printer{w: NewWriter(64 * (len(doc.Blocks) + 1)), table: table, opt: opt}
	for _, b := range doc.Blocks {
		p.block(b)
	}
	return p.w.Bytes()
}

func (p *printer) block(b ast.Block) {
	switch b := b.(type) {
	case *ast.BlankLines:
		for range b.Count {
			p.w.Newline()
		}
	case *ast.CommentLine:
		p.w.WriteString(b.Comment.Text)
		p.w.Newline()
	case *ast.SectionHeader:
		p.w.WriteString(b.Text.Text)
		p.w.Newline()
	case *ast.Directive:
		p.directive(b)
	}
}

func (p *printer) directive(d *ast.Directive) {
	switch d.Kind {
	case ast.DirTransaction:
		p.words(d.Date, d.Flag, d.Keyword)
		p.list(d.Strings)
		p.list(d.Tags)
		p.list(d.Links)
	case ast.DirBalance, ast.DirPrice:
		p.w.WriteString(align.HeaderLabel(d))
		p.amount(d.Amount, d.Line)
	default:
		p.words(d.Date, d.Keyword)
		if len(d.Args) > 0 {
			p.w.Space()
			p.w.writeTokens(d.Args)
		}
	}
	p.comment(d.Comment)
	p.w.Newline()

	for _, sl := range d.Sub {
		p.subLine(sl)
	}
}

func (p *printer) subLine(sl ast.SubLine) {
	p.w.Spaces(sl.Depth() * p.opt.IndentWidth)
	switch sl := sl.(type) {
	case *ast.Posting:
		p.posting(sl)
	case *ast.Metadata:
		p.w.WriteString(sl.Key.Text)
		if len(sl.Value) > 0 {
			p.w.Space()
			p.w.writeTokens(sl.Value)
		}
		p.comment(sl.Comment)
	case *ast.DetachedComment:
		p.w.WriteString(sl.Comment.Text)
	case *ast.TagLine:
		p.list(sl.Items)
		p.comment(sl.Comment)
	}
	p.w.Newline()
}

func (p *printer) posting(post *ast.Posting) {
	p.w.WriteString(align.PostingLabel(post))
	p.amount(post.Amount, post.Line)
	if len(post.Cost) > 0 {
		p.w.Space()
		p.w.writeTokens(post.Cost)
	}
	if post.Price != nil {
		p.w.Space()
		p.w.WriteString(post.Price.Op.Text)
		p.w.Space()
		p.amountBody(post.Price.Amount)
	}
	p.comment(post.Comment)
}

// amount pads to the scope column and writes the amount.
func (p *printer) amount(a *ast.Amount, line ast.LineID) {
	if a.Empty() {
		return
	}
	p.w.PadTo(p.table.Column(line))
	p.amountBody(a)
}

func (p *printer) amountBody(a *ast.Amount) {
	if a == nil {
		return
	}
	p.w.writeTokens(a.Expr)
	if len(a.Tolerance) > 0 {
		p.w.WriteString(" ~ ")
		p.w.writeTokens(a.Tolerance)
	}
	if a.Currency.Valid() {
		if len(a.Expr) > 0 {
			p.w.Space()
		}
		p.w.WriteString(a.Currency.Text)
	}
}

// words writes the present tokens separated by single spaces.
func (p *printer) words(toks ...token.Token) {
	for _, t := range toks {
		if t.Valid() {
			p.w.Space()
			p.w.WriteString(t.Text)
		}
	}
}

func (p *printer) list(toks []token.Token) {
	p.words(toks...)
}

func (p *printer) comment(c token.Token) {
	if c.Valid() {
		p.w.Space()
		p.w.WriteString(c.Text)
	}
}
