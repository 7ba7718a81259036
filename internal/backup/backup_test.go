package backup

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestCreateSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.bean")

	for i := range 5 {
		if err := os.WriteFile(path, []byte(strconv.Itoa(i)), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Create(path, DefaultSuffix); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	want := map[string]string{
		"input.bean.backup":   "0",
		"input.bean.backup.1": "1",
		"input.bean.backup.2": "2",
		"input.bean.backup.3": "3",
		"input.bean.backup.4": "4",
	}
	for name, content := range want {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(got) != content {
			t.Errorf("%s = %q, want %q", name, got, content)
		}
	}
}

func TestCreateReturnsPathAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.bean")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Create(path, ".orig")
	if err != nil {
		t.Fatal(err)
	}
	if got != path+".orig" {
		t.Fatalf("backup path = %q", got)
	}
	info, err := os.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCreateMissingFile(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "nope.bean"), ""); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
