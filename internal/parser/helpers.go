package parser

import (
	"beanfmt/internal/diag"
	"beanfmt/internal/source"
	"beanfmt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atPunct(s string) bool {
	return p.toks[p.pos].IsPunct(s)
}

// atLineEnd: конец содержимого строки: комментарий, перевод строки или EOF.
func (p *Parser) atLineEnd() bool {
	switch p.toks[p.pos].Kind {
	case token.Comment, token.Newline, token.EOF:
		return true
	default:
		return false
	}
}

// advance: съедает следующий токен. EOF никогда не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// eat съедает токен вида k, если он следующий.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect: ожидаем конкретный токен. Если нет: репортим и останавливаемся.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, p.peek(), msg)
	return token.Token{}, false
}

// trailingComment съедает комментарий в конце строки, если он есть.
func (p *Parser) trailingComment() token.Token {
	tok, _ := p.eat(token.Comment)
	return tok
}

// expectLineEnd требует конец строки и съедает перевод строки.
func (p *Parser) expectLineEnd() bool {
	switch p.peek().Kind {
	case token.Newline:
		p.advance()
		return true
	case token.EOF:
		return true
	}
	p.fail(diag.SynExpectEndOfLine, p.peek(), "expected end of line, found "+describe(p.peek()))
	return false
}

// rawUntilLineEnd returns the tokens up to the comment or end of line as a
// sub-slice of the token stream.
func (p *Parser) rawUntilLineEnd() []token.Token {
	start := p.pos
	for !p.atLineEnd() {
		if p.at(token.Invalid) {
			p.fail(diag.SynUnexpectedToken, p.peek(), "unexpected "+describe(p.peek()))
			return nil
		}
		p.pos++
	}
	return p.toks[start:p.pos:p.pos]
}

func (p *Parser) fail(code diag.Code, at token.Token, msg string) {
	sp := at.Span
	if at.Kind == token.EOF && p.pos > 0 {
		prev := p.toks[p.pos-1].Span
		sp = source.At(prev.File, prev.End)
	}
	p.failSpan(code, sp, msg)
}

// failSpan reports the first error only; the parse stops there.
func (p *Parser) failSpan(code diag.Code, sp source.Span, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indentation"
	}
	return tok.Kind.String() + " " + quote(tok.Text)
}

func quote(s string) string {
	const limit = 24
	if len(s) > limit {
		s = s[:limit] + "…"
	}
	return "'" + s + "'"
}
