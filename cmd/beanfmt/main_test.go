package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	messyLedger     = "2024-01-01 *  \"Foo\"\n  Assets:Cash 10 USD\n  Expenses:Food -10 USD\n"
	canonicalLedger = "2024-01-01 * \"Foo\"\n  Assets:Cash    10 USD\n  Expenses:Food  -10 USD\n"
)

// runCLI executes a fresh command tree with an empty config file so the
// surrounding directories cannot leak settings into the test.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), ".beanfmt.toml")
	if werr := os.WriteFile(cfg, nil, 0o600); werr != nil {
		t.Fatal(werr)
	}
	for _, name := range []string{"BEANFMT_INDENT", "BEANFMT_PADDING", "BEANFMT_BACKUP_SUFFIX", "BEANFMT_NO_BACKUP", "BEANFMT_JOBS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if len(args) == 0 || (args[0] != "version" && args[0] != "tokenize") {
		args = append([]string{"--config", cfg, "--ui", "off", "--color", "off"}, args...)
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.bean")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFormatInPlaceWithBackup(t *testing.T) {
	path := writeLedger(t, messyLedger)
	out, stderr, err := runCLI(t, "", path)
	if err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if got := readFile(t, path); got != canonicalLedger {
		t.Fatalf("file = %q", got)
	}
	if got := readFile(t, path+".backup"); got != messyLedger {
		t.Fatalf("backup = %q", got)
	}
	if !strings.Contains(out, "reformatted "+path) {
		t.Fatalf("stdout = %q", out)
	}
}

func TestFormatNoBackup(t *testing.T) {
	path := writeLedger(t, messyLedger)
	if _, stderr, err := runCLI(t, "", "--no-backup", path); err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Fatalf("backup must not exist: %v", err)
	}
}

func TestFormatStdin(t *testing.T) {
	for _, args := range [][]string{{"-"}, {"--stdin-mode"}, {"-s"}} {
		out, stderr, err := runCLI(t, messyLedger, args...)
		if err != nil {
			t.Fatalf("%v: %v (%s)", args, err, stderr)
		}
		if out != canonicalLedger {
			t.Fatalf("%v: stdout = %q", args, out)
		}
	}
}

func TestFormatCheck(t *testing.T) {
	path := writeLedger(t, messyLedger)
	out, _, err := runCLI(t, "", "--check", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("want errReported, got %v", err)
	}
	if !strings.Contains(out, path+": not formatted") {
		t.Fatalf("stdout = %q", out)
	}
	if readFile(t, path) != messyLedger {
		t.Fatal("--check must not write")
	}

	clean := writeLedger(t, canonicalLedger)
	if _, stderr, err := runCLI(t, "", "--check", clean); err != nil {
		t.Fatalf("canonical file: %v (%s)", err, stderr)
	}
}

func TestFormatStdoutFlag(t *testing.T) {
	path := writeLedger(t, messyLedger)
	out, stderr, err := runCLI(t, "", "--stdout", path)
	if err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if out != canonicalLedger || readFile(t, path) != messyLedger {
		t.Fatalf("stdout = %q", out)
	}
}

func TestFormatOptionFlags(t *testing.T) {
	out, stderr, err := runCLI(t, messyLedger, "--indent", "4", "--padding", "3", "-")
	if err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	want := "2024-01-01 * \"Foo\"\n    Assets:Cash     10 USD\n    Expenses:Food   -10 USD\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestFormatJobsZeroMeansDefault(t *testing.T) {
	out, stderr, err := runCLI(t, messyLedger, "-j", "0", "-")
	if err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if out != canonicalLedger {
		t.Fatalf("stdout = %q", out)
	}
	if _, _, err := runCLI(t, messyLedger, "-j", "-1", "-"); err == nil {
		t.Fatal("negative jobs must be rejected")
	}
}

func countCacheEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".mp" {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return n
}

func TestClearCache(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	cacheDir := filepath.Join(cacheHome, "beanfmt")

	path := writeLedger(t, messyLedger)
	if _, stderr, err := runCLI(t, "", "--cache", "--no-backup", path); err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if n := countCacheEntries(t, cacheDir); n == 0 {
		t.Fatal("expected cached entries after a --cache run")
	}

	if _, stderr, err := runCLI(t, "", "--clear-cache", path); err != nil {
		t.Fatalf("run: %v (%s)", err, stderr)
	}
	if n := countCacheEntries(t, cacheDir); n != 0 {
		t.Fatalf("cache still holds %d entries", n)
	}
}

func TestFormatFailureLeavesFileUntouched(t *testing.T) {
	src := "  Assets:Cash 1 USD\n"
	path := writeLedger(t, src)
	_, stderr, err := runCLI(t, "", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("want errReported, got %v", err)
	}
	if !strings.Contains(stderr, "SYN2003") || !strings.Contains(stderr, ":1:3:") {
		t.Fatalf("stderr = %q", stderr)
	}
	if readFile(t, path) != src {
		t.Fatal("failed file was modified")
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Fatalf("no backup expected: %v", err)
	}
}

func TestFormatUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", nil, "no input files"},
		{"stdin with files", []string{"-s", "a.bean"}, "stdin mode"},
		{"bad ui", []string{"--ui", "sometimes", "-"}, "--ui"},
		{"bad indent", []string{"--indent", "0", "-"}, "indent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "beanfmt" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestTokenizeJSON(t *testing.T) {
	path := writeLedger(t, "2024-01-01 open Assets:Cash\n")
	out, _, err := runCLI(t, "", "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	var tokens []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != "EOF" {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestDiagnosticsFormats(t *testing.T) {
	src := "  Assets:Cash 1 USD\n"

	path := writeLedger(t, src)
	_, stderr, err := runCLI(t, "", "--diagnostics", "short", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("want errReported, got %v", err)
	}
	if !strings.HasPrefix(stderr, "error SYN2003 ") || !strings.Contains(stderr, ":1:3 ") {
		t.Fatalf("short stderr = %q", stderr)
	}

	_, stderr, err = runCLI(t, src, "--diagnostics", "json", "-")
	if !errors.Is(err, errReported) {
		t.Fatalf("want errReported, got %v", err)
	}
	var report struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			File   string `json:"file"`
			Line   int    `json:"line"`
			Column int    `json:"column"`
			Code   string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stderr), &report); err != nil {
		t.Fatalf("decode %q: %v", stderr, err)
	}
	d := report.Diagnostics[0]
	if report.Count == 0 || d.File != "<stdin>" || d.Line != 1 || d.Column != 3 || d.Code != "SYN2003" {
		t.Fatalf("report = %+v", report)
	}
}
