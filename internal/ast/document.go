package ast

import "beanfmt/internal/token"

// LineID numbers amount-bearing lines of a Document, starting at 1.
// NoLine marks lines without an amount.
type LineID uint32

const NoLine LineID = 0

type Document struct {
	Blocks []Block
	// AmountLines is the highest LineID handed out.
	AmountLines int
}

// Block: верхнеуровневая конструкция документа.
type Block interface {
	blockNode()
}

// BlankLines is a run of Count ≥ 1 empty lines.
type BlankLines struct {
	Count int
}

// CommentLine is a comment that is not attached to any directive. It is
// always rendered at column zero.
type CommentLine struct {
	Comment token.Token
}

// SectionHeader is an org-mode style "* Heading" line.
type SectionHeader struct {
	Text token.Token
}

func (*BlankLines) blockNode()    {}
func (*CommentLine) blockNode()   {}
func (*SectionHeader) blockNode() {}
func (*Directive) blockNode()     {}
