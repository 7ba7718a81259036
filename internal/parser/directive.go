package parser

import (
	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// parseDated разбирает "Date (Flag|keyword) ..." и открывает директиву для
// последующих строк с отступом.
func (p *Parser) parseDated() {
	p.closeDirective()
	d := &ast.Directive{Date: p.advance()}

	switch tok := p.peek(); {
	case tok.Kind == token.Flag:
		d.Kind = ast.DirTransaction
		d.Flag = p.advance()
	case tok.Kind == token.Keyword:
		kind, _ := ast.LookupDirective(tok.Text)
		if !kind.Dated() {
			p.fail(diag.SynExpectDirective, tok, "'"+tok.Text+"' does not take a date")
			return
		}
		d.Kind = kind
		d.Keyword = p.advance()
	default:
		p.fail(diag.SynExpectDirective, tok, "expected a flag or a directive keyword after the date, found "+describe(tok))
		return
	}

	var ok bool
	switch d.Kind {
	case ast.DirTransaction:
		ok = p.parseTxnHeader(d)
	case ast.DirBalance:
		ok = p.parseBalanceHeader(d)
	case ast.DirPrice:
		ok = p.parsePriceHeader(d)
	default:
		ok = p.parseGenericHeader(d)
	}
	if !ok {
		return
	}
	d.Comment = p.trailingComment()
	if !p.expectLineEnd() {
		return
	}
	p.push(d)
	p.open = d
}

// parseUndated разбирает option/include/plugin/push*/pop*. Эти директивы не
// имеют вложенных строк.
func (p *Parser) parseUndated() {
	p.closeDirective()
	tok := p.peek()
	kind, _ := ast.LookupDirective(tok.Text)
	if kind.Dated() {
		p.fail(diag.SynUnexpectedTopLevel, tok, "'"+tok.Text+"' requires a date")
		return
	}
	d := &ast.Directive{Kind: kind, Keyword: p.advance()}
	if !p.parseGenericHeader(d) {
		return
	}
	d.Comment = p.trailingComment()
	if !p.expectLineEnd() {
		return
	}
	p.push(d)
}

// Transaction header: [String [String]] (Tag|Link)*.
func (p *Parser) parseTxnHeader(d *ast.Directive) bool {
	for p.at(token.String) {
		if len(d.Strings) == 2 {
			p.fail(diag.SynUnexpectedToken, p.peek(), "a transaction takes at most a payee and a narration")
			return false
		}
		d.Strings = append(d.Strings, p.advance())
	}
	for !p.atLineEnd() {
		switch tok := p.peek(); tok.Kind {
		case token.Tag:
			d.Tags = append(d.Tags, p.advance())
		case token.Link:
			d.Links = append(d.Links, p.advance())
		default:
			p.fail(diag.SynUnexpectedToken, tok, "expected a tag or a link, found "+describe(tok))
			return false
		}
	}
	return true
}

// Balance: Account Expr [~ Expr] Currency.
func (p *Parser) parseBalanceHeader(d *ast.Directive) bool {
	acc, ok := p.expect(token.Account, diag.SynExpectAccount, "expected an account after 'balance'")
	if !ok {
		return false
	}
	d.Subject = acc
	amt, ok := p.parseAmount(true, true)
	if !ok {
		return false
	}
	d.Amount = amt
	d.Line = p.nextLine()
	return true
}

// Price: Currency Expr Currency.
func (p *Parser) parsePriceHeader(d *ast.Directive) bool {
	cur, ok := p.expect(token.Currency, diag.SynExpectCurrency, "expected a commodity after 'price'")
	if !ok {
		return false
	}
	d.Subject = cur
	amt, ok := p.parseAmount(true, false)
	if !ok {
		return false
	}
	d.Amount = amt
	d.Line = p.nextLine()
	return true
}

// parseGenericHeader keeps the arguments raw, checking only the leading
// account or commodity where a directive cannot do without one.
func (p *Parser) parseGenericHeader(d *ast.Directive) bool {
	switch d.Kind {
	case ast.DirOpen, ast.DirClose, ast.DirPad, ast.DirNote, ast.DirDocument:
		if !p.at(token.Account) {
			p.fail(diag.SynExpectAccount, p.peek(), "expected an account after '"+d.Kind.String()+"'")
			return false
		}
	case ast.DirCommodity:
		if !p.at(token.Currency) {
			p.fail(diag.SynExpectCurrency, p.peek(), "expected a commodity after 'commodity'")
			return false
		}
	}
	d.Args = p.rawUntilLineEnd()
	return !p.failed
}
