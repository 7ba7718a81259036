// Package beanfmt formats beancount ledger text into its canonical layout.
//
// The heavy lifting lives in internal packages; this package is the small
// embedding surface for programs that want formatting without the CLI.
package beanfmt

import (
	"beanfmt/internal/diag"
	"beanfmt/internal/format"
)

// Options tunes the layout. Zero fields fall back to the defaults.
type Options = format.Options

// LexError reports input that could not be tokenized.
type LexError = diag.LexError

// ParseError reports tokens that do not form a valid ledger.
type ParseError = diag.ParseError

// DefaultOptions returns two-space indentation and two-space padding.
func DefaultOptions() Options { return format.DefaultOptions() }

// Format returns the canonical form of src with the default options.
func Format(src string) (string, error) {
	return FormatWith(src, DefaultOptions())
}

// FormatWith returns the canonical form of src. On failure the error is a
// *LexError or *ParseError and no output is produced.
func FormatWith(src string, opt Options) (string, error) {
	out, err := format.Format([]byte(src), opt)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
