// Package trace provides a tracing subsystem for beanfmt runs.
//
// It records how long each file and each pipeline stage took, which helps
// find the slow file in a large ledger tree.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	beanfmt --trace=- --trace-level=detail main.bean
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failed spans, whatever their scope
//   - LevelPhase: The run as a whole
//   - LevelDetail: Per-file spans and points (cache hits, backups)
//   - LevelDebug: Per-stage spans (lex, parse, align, render)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End("")
//
// A span closed with Fail carries the error text and is reported even at
// LevelError.
package trace
