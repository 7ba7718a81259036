package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var ledgerSeeds = []string{
	"",
	"\n\n\n",
	"2024-01-01 open Assets:Cash USD,EUR\n",
	"2024-01-01 * \"Payee\" \"Narration\" #tag ^link\n  Assets:Cash  -(1+2)*3 USD {10 EUR, 2024-01-01} @ 2 EUR ; c\n  Expenses:X\n",
	"2024-01-01 balance Assets:Cash 10 ~ 0.01 USD\n",
	"option \"title\" \"x\"\n* Section\n; comment\n",
	"2024-01-01 txn\n  key: \"v\"\n  ! Assets:A 1 X\n    sub: 2024-01-01\n  #t\n",
	"2024-13-01 open Assets:Cash\n",
	"2024-01-01 note Assets:Cash \"unterminated\n",
	"  Assets:Orphan 1 USD\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range ledgerSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.bean файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".bean" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
