package parser

import (
	"testing"

	"beanfmt/internal/ast"
	"beanfmt/internal/diag"
)

func TestTransactionStructure(t *testing.T) {
	doc := mustParse(t, "2024-01-01 * \"Shop\" \"Food\" ^l1 #t1 #t2 ; hdr\n"+
		"  Assets:Cash   -10 USD ; paid\n"+
		"  Expenses:Food\n"+
		"    note: \"x\"\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	d, ok := doc.Blocks[0].(*ast.Directive)
	if !ok {
		t.Fatalf("expected *ast.Directive, got %T", doc.Blocks[0])
	}
	if d.Kind != ast.DirTransaction || d.Flag.Text != "*" {
		t.Fatalf("unexpected header kind=%v flag=%q", d.Kind, d.Flag.Text)
	}
	if len(d.Strings) != 2 || len(d.Tags) != 2 || len(d.Links) != 1 {
		t.Fatalf("strings=%d tags=%d links=%d", len(d.Strings), len(d.Tags), len(d.Links))
	}
	if d.Comment.Text != "; hdr" {
		t.Fatalf("header comment = %q", d.Comment.Text)
	}
	if len(d.Sub) != 3 {
		t.Fatalf("expected 3 sub-lines, got %d", len(d.Sub))
	}

	cash := d.Sub[0].(*ast.Posting)
	if cash.Line != 1 || cash.Comment.Text != "; paid" || cash.Amount.Currency.Text != "USD" {
		t.Fatalf("unexpected first posting %+v", cash)
	}
	if len(cash.Amount.Expr) != 2 {
		t.Fatalf("expression must keep sign and number, got %d tokens", len(cash.Amount.Expr))
	}
	food := d.Sub[1].(*ast.Posting)
	if food.HasAmount() || food.Amount != nil {
		t.Fatal("posting without amount must not get a line id")
	}
	meta := d.Sub[2].(*ast.Metadata)
	if meta.Level != 2 || meta.Key.Text != "note:" || len(meta.Value) != 1 {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if doc.AmountLines != 1 {
		t.Fatalf("AmountLines = %d, want 1", doc.AmountLines)
	}
}

func TestBlankLinesPreserved(t *testing.T) {
	doc := mustParse(t, "; head\n\n\n2024-01-01 open Assets:A\n\n")
	want := []string{"*ast.CommentLine", "*ast.BlankLines", "*ast.Directive", "*ast.BlankLines"}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(doc.Blocks), len(want))
	}
	if n := doc.Blocks[1].(*ast.BlankLines).Count; n != 2 {
		t.Fatalf("first blank run = %d, want 2", n)
	}
	if n := doc.Blocks[3].(*ast.BlankLines).Count; n != 1 {
		t.Fatalf("trailing blank run = %d, want 1", n)
	}
}

func TestBalanceAndPrice(t *testing.T) {
	doc := mustParse(t, "2024-01-01 balance Assets:Cash 10 ~ 0.01 USD\n2024-01-02 price VBTLX 100.5 USD\n")
	bal := doc.Blocks[0].(*ast.Directive)
	if bal.Subject.Text != "Assets:Cash" || len(bal.Amount.Tolerance) != 1 || bal.Line != 1 {
		t.Fatalf("unexpected balance %+v", bal)
	}
	price := doc.Blocks[1].(*ast.Directive)
	if price.Subject.Text != "VBTLX" || price.Amount.Currency.Text != "USD" || price.Line != 2 {
		t.Fatalf("unexpected price %+v", price)
	}
}

func TestCostAndPricePosting(t *testing.T) {
	doc := mustParse(t, "2024-01-01 *\n  Assets:Stock 10 HOOL {{500 USD, 2024-01-01}} @@ 5,000 USD\n")
	post := doc.Blocks[0].(*ast.Directive).Sub[0].(*ast.Posting)
	if len(post.Cost) != 6 {
		t.Fatalf("cost must keep braces, got %d tokens", len(post.Cost))
	}
	if post.Price == nil || post.Price.Op.Text != "@@" || post.Price.Amount.Expr[0].Text != "5,000" {
		t.Fatalf("unexpected price %+v", post.Price)
	}
}

func TestIndentedCommentWithoutDirective(t *testing.T) {
	doc := mustParse(t, "  ; floating\n2024-01-01 *\n  ; inside\n")
	if _, ok := doc.Blocks[0].(*ast.CommentLine); !ok {
		t.Fatalf("expected CommentLine, got %T", doc.Blocks[0])
	}
	d := doc.Blocks[1].(*ast.Directive)
	if c, ok := d.Sub[0].(*ast.DetachedComment); !ok || c.Level != 1 {
		t.Fatalf("expected level-1 DetachedComment, got %#v", d.Sub[0])
	}
}

func TestUndatedDirectives(t *testing.T) {
	doc := mustParse(t, "option \"title\" \"Book\"\npushtag #trip\ninclude \"other.bean\"\n")
	kinds := []ast.DirectiveKind{ast.DirOption, ast.DirPushtag, ast.DirInclude}
	for i, k := range kinds {
		d := doc.Blocks[i].(*ast.Directive)
		if d.Kind != k || d.Date.Valid() {
			t.Fatalf("block %d: kind %v dated=%v", i, d.Kind, d.Date.Valid())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		line  uint32
		col   uint32
	}{
		{"orphan sub-line", "  Assets:Cash 10 USD\n", diag.SynOrphanSubLine, 1, 3},
		{"orphan after blank", "2024-01-01 *\n\n  Assets:Cash 10 USD\n", diag.SynOrphanSubLine, 3, 3},
		{"metadata without key", "2024-01-01 *\n  : x\n", diag.SynExpectMetaKey, 2, 3},
		{"unexpected top level", "Assets:Cash\n", diag.SynUnexpectedTopLevel, 1, 1},
		{"balance without account", "2024-01-01 balance 10 USD\n", diag.SynExpectAccount, 1, 20},
		{"balance without currency", "2024-01-01 balance Assets:A 10\n", diag.SynExpectCurrency, 1, 31},
		{"unclosed cost", "2024-01-01 *\n  Assets:A 1 X {2 USD\n", diag.SynUnclosedCost, 2, 16},
		{"unclosed paren", "2024-01-01 *\n  Assets:A (1 + 2 USD\n", diag.SynUnclosedParen, 2, 12},
		{"amount starting with operator", "2024-01-01 *\n  Assets:A * 2 USD\n", diag.SynExpectEndOfLine, 2, 12},
		{"date without directive", "2024-01-01 \"x\"\n", diag.SynExpectDirective, 1, 12},
		{"postings outside transaction", "2024-01-01 open Assets:A\n  Assets:B 1 USD\n", diag.SynUnexpectedToken, 2, 3},
		{"undated keyword with date", "2024-01-01 option \"a\" \"b\"\n", diag.SynExpectDirective, 1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag, fs := parseSource(t, tt.input)
			if res.OK || res.Doc != nil {
				t.Fatal("expected failure without a document")
			}
			d, ok := bag.FirstError()
			if !ok {
				t.Fatal("expected an error diagnostic")
			}
			if d.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", d.Code.ID(), d.Message, tt.code.ID())
			}
			start, _ := fs.Resolve(d.Primary)
			if start.Line != tt.line || start.Col != tt.col {
				t.Fatalf("position = %d:%d, want %d:%d", start.Line, start.Col, tt.line, tt.col)
			}
			if bag.Len() != 1 {
				t.Fatalf("parsing must stop at the first error: %s", diagnosticsSummary(bag))
			}
		})
	}
}

func TestUnclosedCostSpansToLastToken(t *testing.T) {
	res, bag, fs := parseSource(t, "2024-01-01 *\n  Assets:A 1 X {2 USD ; c\n")
	if res.OK {
		t.Fatal("expected failure")
	}
	d, _ := bag.FirstError()
	start, end := fs.Resolve(d.Primary)
	// от '{' до конца "USD"
	if start.Line != 2 || start.Col != 16 || end.Line != 2 || end.Col != 22 {
		t.Fatalf("span = %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
}

func TestParseAcceptsBeancountFlagsAndCosts(t *testing.T) {
	doc := mustParse(t, "2024-01-01 P \"x\"\n  Assets:A 10 HOOL {10 # 5 USD}\n  ? Assets:B -100. USD\n")
	d, ok := doc.Blocks[0].(*ast.Directive)
	if !ok || d.Kind != ast.DirTransaction || d.Flag.Text != "P" {
		t.Fatalf("unexpected header: %#v", doc.Blocks[0])
	}
	if len(d.Sub) != 2 {
		t.Fatalf("sub-lines = %d", len(d.Sub))
	}
	first := d.Sub[0].(*ast.Posting)
	if len(first.Cost) != 6 || first.Cost[2].Text != "#" {
		t.Fatalf("cost tokens = %v", first.Cost)
	}
	second := d.Sub[1].(*ast.Posting)
	if second.Flag.Text != "?" || second.Amount.Expr[1].Text != "100." {
		t.Fatalf("second posting = %#v", second)
	}
}

func TestIndentWidth(t *testing.T) {
	cases := map[string]int{"  ": 2, "\t": 4, " \t": 4, "\t  ": 6}
	for in, want := range cases {
		if got := indentWidth(in); got != want {
			t.Errorf("indentWidth(%q) = %d, want %d", in, got, want)
		}
	}
}
