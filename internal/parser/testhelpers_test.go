package parser

import (
	"fmt"
	"strings"
	"testing"

	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
	"beanfmt/internal/lexer"
	"beanfmt/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseSource лексит и парсит строку, возвращая результат, диагностику и FileSet.
func parseSource(t *testing.T, input string) (Result, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.bean", []byte(input)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	tokens := lexer.Tokenize(file, rep)
	if bag.HasErrors() {
		t.Fatalf("lex errors: %s", diagnosticsSummary(bag))
	}
	return ParseFile(tokens, Options{Reporter: rep}), bag, fs
}

func mustParse(t *testing.T, input string) *ast.Document {
	t.Helper()
	res, bag, _ := parseSource(t, input)
	if !res.OK {
		t.Fatalf("parse failed: %s", diagnosticsSummary(bag))
	}
	return res.Doc
}
