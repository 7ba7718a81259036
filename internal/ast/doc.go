// Package ast describes the document tree produced by the structural parser.
//
// A Document is a flat, ordered list of Blocks. Directives own their
// indented SubLines. Raw fields (amount expressions, cost specs, metadata
// values, directive arguments) are sub-slices of the lexer's token slice and
// are never evaluated. Optional single-token fields hold the zero
// token.Token when absent (see token.Token.Valid).
//
// Block and SubLine are closed sets: only the types in this package
// implement them, and consumers switch over them exhaustively.
package ast
