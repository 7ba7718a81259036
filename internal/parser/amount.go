package parser

import (
	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// parseAmount разбирает Expr [~ Expr] [Currency].
// required: выражение и валюта обязательны (balance, price, цена проводки).
// Возвращает nil без ошибки, если необязательная сумма отсутствует.
func (p *Parser) parseAmount(required, tolerance bool) (*ast.Amount, bool) {
	amt := &ast.Amount{}
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	amt.Expr = expr
	if required && len(expr) == 0 {
		p.fail(diag.SynExpectAmount, p.peek(), "expected an amount, found "+describe(p.peek()))
		return nil, false
	}
	if tolerance && p.atPunct("~") {
		p.advance()
		tol, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if len(tol) == 0 {
			p.fail(diag.SynExpectAmount, p.peek(), "expected a tolerance after '~'")
			return nil, false
		}
		amt.Tolerance = tol
	}
	if cur, ok := p.eat(token.Currency); ok {
		amt.Currency = cur
	} else if required {
		p.fail(diag.SynExpectCurrency, p.peek(), "expected a currency, found "+describe(p.peek()))
		return nil, false
	}
	if amt.Empty() {
		return nil, true
	}
	return amt, true
}

// parseExpr собирает арифметическое выражение как есть: числа, знаки,
// операторы и скобки. Проверяются только баланс скобок и наличие числа.
// Выражение не может начинаться с '*' или '/'.
func (p *Parser) parseExpr() ([]token.Token, bool) {
	start := p.pos
	if !p.peek().IsAmountStart() {
		return p.toks[start:start:start], true
	}
	depth := 0
	hasNumber := false
	var open token.Token
loop:
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Number:
			hasNumber = true
		case tok.IsOperator():
		case tok.IsPunct("("):
			if depth == 0 {
				open = tok
			}
			depth++
		case tok.IsPunct(")"):
			if depth == 0 {
				break loop
			}
			depth--
		default:
			break loop
		}
		p.advance()
	}
	if depth != 0 {
		p.failSpan(diag.SynUnclosedParen, open.Span.Cover(p.toks[p.pos-1].Span), "unclosed parenthesis in amount")
		return nil, false
	}
	if p.pos > start && !hasNumber {
		p.fail(diag.SynExpectAmount, p.toks[start], "amount expression has no number")
		return nil, false
	}
	return p.toks[start:p.pos:p.pos], true
}

// parseCost собирает "{...}" или "{{...}}" вместе со скобками.
func (p *Parser) parseCost() ([]token.Token, bool) {
	open := p.advance()
	closing := "}"
	if open.Text == "{{" {
		closing = "}}"
	}
	start := p.pos - 1
	for !p.atPunct(closing) {
		tok := p.peek()
		if tok.IsLineEnd() || tok.Kind == token.Comment || tok.IsPunct("{") || tok.IsPunct("{{") ||
			tok.IsPunct("}") || tok.IsPunct("}}") || tok.Kind == token.Invalid {
			p.failSpan(diag.SynUnclosedCost, open.Span.Cover(p.toks[p.pos-1].Span),
				"expected '"+closing+"' to close the cost specification")
			return nil, false
		}
		p.advance()
	}
	p.advance()
	return p.toks[start:p.pos:p.pos], true
}
