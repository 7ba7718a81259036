package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"beanfmt/internal/diag"
	"beanfmt/internal/lexer"
	"beanfmt/internal/source"
	"beanfmt/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// lex токенизирует строку и отбрасывает завершающий EOF
func lex(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.bean", []byte(input)))
	reporter := &testReporter{}
	tokens := lexer.Tokenize(file, reporter)
	if last := tokens[len(tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("token stream must end with EOF, got %v", last.Kind)
	}
	return tokens[:len(tokens)-1], reporter
}

type kt struct {
	kind token.Kind
	text string
}

func expectTokens(t *testing.T, input string, expected []kt) {
	t.Helper()
	tokens, reporter := lex(t, input)
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, reporter.ErrorMessages())
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i].kind || tok.Text != expected[i].text {
			t.Errorf("Token %d: expected %v(%q), got %v(%q)",
				i, expected[i].kind, expected[i].text, tok.Kind, tok.Text)
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestTransactionHeader(t *testing.T) {
	expectTokens(t, `2024-01-01 * "Shop" "Food" #trip ^inv-1 ; paid`+"\n", []kt{
		{token.Date, "2024-01-01"},
		{token.Flag, "*"},
		{token.String, `"Shop"`},
		{token.String, `"Food"`},
		{token.Tag, "#trip"},
		{token.Link, "^inv-1"},
		{token.Comment, "; paid"},
		{token.Newline, "\n"},
	})
}

func TestPostingWithExpression(t *testing.T) {
	expectTokens(t, "  * Assets:Cash   -(2 * 1,000.50)/3 USD\n", []kt{
		{token.Indent, "  "},
		{token.Flag, "*"},
		{token.Account, "Assets:Cash"},
		{token.Punct, "-"},
		{token.Punct, "("},
		{token.Number, "2"},
		{token.Punct, "*"},
		{token.Number, "1,000.50"},
		{token.Punct, ")"},
		{token.Punct, "/"},
		{token.Number, "3"},
		{token.Currency, "USD"},
		{token.Newline, "\n"},
	})
}

func TestCostAndPrice(t *testing.T) {
	expectTokens(t, "  Assets:Stock 10 VBTLX {{1,000 USD, 2024-01-02}} @@ .5 USD", []kt{
		{token.Indent, "  "},
		{token.Account, "Assets:Stock"},
		{token.Number, "10"},
		{token.Currency, "VBTLX"},
		{token.Punct, "{{"},
		{token.Number, "1,000"},
		{token.Currency, "USD"},
		{token.Punct, ","},
		{token.Date, "2024-01-02"},
		{token.Punct, "}}"},
		{token.Punct, "@@"},
		{token.Number, ".5"},
		{token.Currency, "USD"},
	})
}

func TestMetadataAndKeywords(t *testing.T) {
	expectTokens(t, "2024-01-01 open Assets:Банк USD\n  note: \"x\"\noption \"title\" \"T\"\n", []kt{
		{token.Date, "2024-01-01"},
		{token.Keyword, "open"},
		{token.Account, "Assets:Банк"},
		{token.Currency, "USD"},
		{token.Newline, "\n"},
		{token.Indent, "  "},
		{token.Key, "note:"},
		{token.String, `"x"`},
		{token.Newline, "\n"},
		{token.Keyword, "option"},
		{token.String, `"title"`},
		{token.String, `"T"`},
		{token.Newline, "\n"},
	})
}

func TestBlankAndWhitespaceOnlyLines(t *testing.T) {
	expectTokens(t, "; a\n\n   \n\t\n2024/01/01 balance Assets:A 1 ~ 0.01 USD", []kt{
		{token.Comment, "; a"},
		{token.Newline, "\n"},
		{token.Newline, "\n"},
		{token.Newline, "\n"},
		{token.Newline, "\n"},
		{token.Date, "2024/01/01"},
		{token.Keyword, "balance"},
		{token.Account, "Assets:A"},
		{token.Number, "1"},
		{token.Punct, "~"},
		{token.Number, "0.01"},
		{token.Currency, "USD"},
	})
}

func TestSectionAndStarClassification(t *testing.T) {
	expectTokens(t, "* Income  \n  ; *note*\n", []kt{
		{token.Section, "* Income"},
		{token.Newline, "\n"},
		{token.Indent, "  "},
		{token.Comment, "; *note*"},
		{token.Newline, "\n"},
	})
}

func TestCommentTrailingWhitespaceTrimmed(t *testing.T) {
	expectTokens(t, ";  keep  inner \t \n", []kt{
		{token.Comment, ";  keep  inner"},
		{token.Newline, "\n"},
	})
}

func TestStringSpanningLines(t *testing.T) {
	expectTokens(t, "2024-01-01 note Assets:A \"line\nnext \\\" q\"\n", []kt{
		{token.Date, "2024-01-01"},
		{token.Keyword, "note"},
		{token.Account, "Assets:A"},
		{token.String, "\"line\nnext \\\" q\""},
		{token.Newline, "\n"},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []kt
	}{
		{"1,000,000.25", []kt{{token.Number, "1,000,000.25"}}},
		{"12.", []kt{{token.Number, "12."}}},
		{"10. USD", []kt{{token.Number, "10."}, {token.Currency, "USD"}}},
		{"20240101", []kt{{token.Number, "20240101"}}},
		{"1,00", []kt{{token.Number, "1"}, {token.Punct, ","}, {token.Number, "00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, _ := lex(t, tt.input)
			if len(tokens) < len(tt.want) {
				t.Fatalf("got %v", tokensToString(tokens))
			}
			for i, w := range tt.want {
				if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
					t.Errorf("token %d: want %v(%q), got %v(%q)", i, w.kind, w.text, tokens[i].Kind, tokens[i].Text)
				}
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		line  uint32
		col   uint32
	}{
		{"unknown char", "2024-01-01 open Assets:A\n  $ x\n", diag.LexUnknownChar, 2, 3},
		{"unterminated string", "2024-01-01 * \"oops\n", diag.LexUnterminatedString, 1, 14},
		{"bad date", "2024-02-30 open Assets:A", diag.LexBadDate, 1, 1},
		{"lonely caret", "2024-01-01 * ^ x", diag.LexUnknownChar, 1, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("test.bean", []byte(tt.input))
			reporter := &testReporter{}
			tokens := lexer.Tokenize(fs.Get(id), reporter)
			if len(reporter.diagnostics) == 0 {
				t.Fatalf("expected a diagnostic, tokens: %v", tokensToString(tokens))
			}
			d := reporter.diagnostics[0]
			if d.Code != tt.code {
				t.Fatalf("code = %s, want %s", d.Code.ID(), tt.code.ID())
			}
			start, _ := fs.Resolve(d.Primary)
			if start.Line != tt.line || start.Col != tt.col {
				t.Fatalf("position = %d:%d, want %d:%d", start.Line, start.Col, tt.line, tt.col)
			}
			found := false
			for _, tok := range tokens {
				if tok.Kind == token.Invalid {
					found = true
				}
			}
			if !found {
				t.Fatal("expected an Invalid token in the stream")
			}
		})
	}
}

func TestNextAfterEOF(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("test.bean", []byte("2024-01-01 *"))), lexer.Options{})

	if tok := lx.Next(); tok.Kind != token.Date {
		t.Fatalf("first token = %v, want Date", tok.Kind)
	}
	if flag := lx.Next(); flag.Kind != token.Flag {
		t.Fatalf("'*' after date must be a Flag, got %v", flag.Kind)
	}
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestOtherFlags(t *testing.T) {
	expectTokens(t, "2024-01-01 P \"x\"\n  ? Assets:A 1 USD\n  M Assets:B\n", []kt{
		{token.Date, "2024-01-01"},
		{token.Flag, "P"},
		{token.String, `"x"`},
		{token.Newline, "\n"},
		{token.Indent, "  "},
		{token.Flag, "?"},
		{token.Account, "Assets:A"},
		{token.Number, "1"},
		{token.Currency, "USD"},
		{token.Newline, "\n"},
		{token.Indent, "  "},
		{token.Flag, "M"},
		{token.Account, "Assets:B"},
		{token.Newline, "\n"},
	})
	// вне позиции флага одиночная заглавная буква: валюта
	expectTokens(t, "2024-01-01 P\"x\"", []kt{
		{token.Date, "2024-01-01"},
		{token.Currency, "P"},
		{token.String, `"x"`},
	})
}

func TestCompoundCost(t *testing.T) {
	expectTokens(t, "  Assets:Stock 10 HOOL {10 # 5 USD}", []kt{
		{token.Indent, "  "},
		{token.Account, "Assets:Stock"},
		{token.Number, "10"},
		{token.Currency, "HOOL"},
		{token.Punct, "{"},
		{token.Number, "10"},
		{token.Punct, "#"},
		{token.Number, "5"},
		{token.Currency, "USD"},
		{token.Punct, "}"},
	})
}

func TestEmptyInput(t *testing.T) {
	tokens, _ := lex(t, "")
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", tokensToString(tokens))
	}
}

func BenchmarkTokenize(b *testing.B) {
	var sb strings.Builder
	for i := range 500 {
		fmt.Fprintf(&sb, "2024-01-%02d * \"Payee\" \"Narration\"\n  Assets:Cash  -%d.00 USD\n  Expenses:Food\n\n", i%28+1, i)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.bean", []byte(sb.String())))
	b.ResetTimer()
	for range b.N {
		lexer.Tokenize(file, nil)
	}
}
