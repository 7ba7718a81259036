// Package diag defines the diagnostic model shared by the lexer, the parser
// and the file driver.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexing and parsing phases.
//   - Offer light-weight utilities (Reporter, Bag) so producers can emit
//     diagnostics without coupling to storage or rendering.
//   - Turn the first error of a Bag into the typed, positioned LexError or
//     ParseError that the formatting core returns to its callers.
//
// # Scope
//
// Package diag performs no IO and no colouring. Human-oriented rendering
// lives in internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short, actionable text naming the expected construct.
//   - Primary – the source.Span pointing at the problem.
//   - Notes – optional secondary spans.
//
// Every error is terminal for the document it belongs to: the formatter has
// no partial-recovery mode, so producers stop after the first SevError.
package diag
