// Package token defines lexical token kinds for ledger sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Signs and arithmetic operators are separate Punct tokens. Amount
//     expressions are never folded into a single token.
//   - Interior whitespace is not a token. Indent only appears at line start.
package token
