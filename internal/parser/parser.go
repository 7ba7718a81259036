package parser

import (
	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
	"beanfmt/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Result holds the parsed document. Doc is nil when OK is false: there is
// no partial document.
type Result struct {
	Doc *ast.Document
	OK  bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks []token.Token // поток токенов, заканчивается EOF
	pos  int
	opts Options

	doc *ast.Document
	// open: директива, которой принадлежат строки с отступом
	open *ast.Directive
	// postingIndent: ширина отступа последней проводки в open, -1 если нет
	postingIndent int
	failed        bool
}

// ParseFile: входная точка для разбора одного файла. tokens must end with
// token.EOF, as returned by lexer.Tokenize. The first error aborts parsing.
func ParseFile(tokens []token.Token, opts Options) Result {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF})
	}
	p := Parser{
		toks:          tokens,
		opts:          opts,
		doc:           &ast.Document{},
		postingIndent: -1,
	}
	p.parseBlocks()
	if p.failed {
		return Result{}
	}
	return Result{Doc: p.doc, OK: true}
}

// parseBlocks: основной цикл верхнего уровня: пока не EOF.
func (p *Parser) parseBlocks() {
	for !p.failed && !p.at(token.EOF) {
		switch tok := p.peek(); tok.Kind {
		case token.Newline:
			p.parseBlankLines()
		case token.Indent:
			p.parseIndented()
		case token.Comment:
			p.closeDirective()
			p.advance()
			p.push(&ast.CommentLine{Comment: tok})
			p.expectLineEnd()
		case token.Section:
			p.closeDirective()
			p.advance()
			p.push(&ast.SectionHeader{Text: tok})
			p.expectLineEnd()
		case token.Date:
			p.parseDated()
		case token.Keyword:
			p.parseUndated()
		default:
			p.fail(diag.SynUnexpectedTopLevel, tok, "expected a date, a directive keyword, a comment or a section header")
		}
	}
}

func (p *Parser) parseBlankLines() {
	p.closeDirective()
	n := 0
	for p.at(token.Newline) {
		p.advance()
		n++
	}
	p.push(&ast.BlankLines{Count: n})
}

func (p *Parser) push(b ast.Block) {
	p.doc.Blocks = append(p.doc.Blocks, b)
}

func (p *Parser) closeDirective() {
	p.open = nil
	p.postingIndent = -1
}

func (p *Parser) nextLine() ast.LineID {
	p.doc.AmountLines++
	return ast.LineID(p.doc.AmountLines)
}
