package diag

import (
	"testing"

	"beanfmt/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")

	file := fs.Add("/workspace/ledger/main.bean", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LexBadNumber,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 ledger/main.bean:1:1 first line second\n" +
		"note SYN2001 ledger/main.bean:2:1 note line\n" +
		"warning LEX1004 ledger/main.bean:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFirstError(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<stdin>", []byte("ab\ncd\n"))

	bag := NewBag(4)
	if err := FirstError(bag, fs); err != nil {
		t.Fatalf("empty bag: want nil, got %v", err)
	}

	r := BagReporter{Bag: bag}
	r.Report(SynInfo, SevInfo, source.At(file, 0), "ignored", nil)
	ReportError(r, LexUnknownChar, source.Span{File: file, Start: 4, End: 5}, "unexpected character 'd'")
	ReportError(r, SynUnexpectedToken, source.At(file, 0), "later")

	err := FirstError(bag, fs)
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T", err)
	}
	if lexErr.Line != 2 || lexErr.Column != 2 {
		t.Fatalf("want 2:2, got %d:%d", lexErr.Line, lexErr.Column)
	}
	if got, want := lexErr.Error(), "lex error at 2:2: unexpected character 'd'"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	bag2 := NewBag(4)
	ReportError(BagReporter{Bag: bag2}, SynOrphanSubLine, source.At(file, 3), "orphan")
	if _, ok := FirstError(bag2, fs).(*ParseError); !ok {
		t.Fatalf("want *ParseError")
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(Diagnostic{Severity: SevWarning}) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(Diagnostic{Severity: SevError}) {
		t.Fatal("second add must hit the limit")
	}
	if bag.HasErrors() {
		t.Fatal("only a warning was stored")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:   "LEX1001",
		SynExpectMetaKey: "SYN2004",
		IOLoadFileError:  "IO4001",
		UnknownCode:      "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
}
