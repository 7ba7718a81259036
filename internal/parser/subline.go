package parser

import (
	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

// parseIndented разбирает строку с отступом: проводку, метаданные,
// отдельный комментарий или строку тегов текущей директивы.
func (p *Parser) parseIndented() {
	indent := p.advance()
	width := indentWidth(indent.Text)
	tok := p.peek()

	// строка с отступом, начинающаяся с даты, это новая директива
	if tok.Kind == token.Date {
		p.parseDated()
		return
	}
	if tok.Kind == token.Comment && p.open == nil {
		p.advance()
		p.push(&ast.CommentLine{Comment: tok})
		p.expectLineEnd()
		return
	}
	if tok.IsPunct(":") {
		p.fail(diag.SynExpectMetaKey, tok, "metadata entry has no key")
		return
	}
	if p.open == nil {
		p.fail(diag.SynOrphanSubLine, tok, "indented line does not belong to any directive")
		return
	}

	var line ast.SubLine
	switch tok.Kind {
	case token.Comment:
		line = &ast.DetachedComment{Level: p.childLevel(width), Comment: p.advance()}
	case token.Key:
		line = p.parseMetadata(width)
	case token.Account, token.Flag:
		if p.open.Kind != ast.DirTransaction {
			p.fail(diag.SynUnexpectedToken, tok, "postings are only allowed in transactions")
			return
		}
		line = p.parsePosting(width)
	case token.Tag, token.Link:
		line = p.parseTagLine(width)
	default:
		p.fail(diag.SynUnexpectedToken, tok, "expected a posting, metadata or a comment, found "+describe(tok))
		return
	}
	if p.failed || !p.expectLineEnd() {
		return
	}
	p.open.Sub = append(p.open.Sub, line)
}

// childLevel: строки глубже последней проводки принадлежат ей.
func (p *Parser) childLevel(width int) int {
	if p.postingIndent >= 0 && width > p.postingIndent {
		return 2
	}
	return 1
}

func (p *Parser) parseMetadata(width int) ast.SubLine {
	m := &ast.Metadata{Level: p.childLevel(width), Key: p.advance()}
	m.Value = p.rawUntilLineEnd()
	m.Comment = p.trailingComment()
	return m
}

func (p *Parser) parseTagLine(width int) ast.SubLine {
	t := &ast.TagLine{Level: p.childLevel(width)}
	for p.at(token.Tag) || p.at(token.Link) {
		t.Items = append(t.Items, p.advance())
	}
	t.Comment = p.trailingComment()
	return t
}

// Posting: [Flag] Account [Amount] [Cost] [@|@@ Amount] [Comment].
func (p *Parser) parsePosting(width int) ast.SubLine {
	post := &ast.Posting{Level: 1}
	p.postingIndent = width
	post.Flag, _ = p.eat(token.Flag)
	acc, ok := p.expect(token.Account, diag.SynExpectAccount, "expected an account in posting")
	if !ok {
		return nil
	}
	post.Account = acc

	if post.Amount, ok = p.parseAmount(false, false); !ok {
		return nil
	}
	if p.atPunct("{") || p.atPunct("{{") {
		if post.Cost, ok = p.parseCost(); !ok {
			return nil
		}
	}
	if p.atPunct("@") || p.atPunct("@@") {
		price := &ast.Price{Op: p.advance()}
		if price.Amount, ok = p.parseAmount(true, false); !ok {
			return nil
		}
		post.Price = price
	}
	post.Comment = p.trailingComment()
	if post.Amount != nil {
		post.Line = p.nextLine()
	}
	return post
}

// indentWidth считает ширину отступа; табуляция до следующей позиции, кратной 4.
func indentWidth(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			w += 4 - w%4
		} else {
			w++
		}
	}
	return w
}
