package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"beanfmt/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	files := []string{"a.bean", "b.bean"}
	m := NewProgressModel("beanfmt", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.bean", Stage: driver.StageFormat, Status: driver.StatusWorking})
	if m.items[0].state != stateFormatting {
		t.Fatalf("state = %s", m.items[0].state)
	}
	m.applyEvent(driver.Event{File: "a.bean", Stage: driver.StageWrite, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.bean", Stage: driver.StageFormat, Status: driver.StatusError, Err: errors.New("b.bean: parse error at 1:3")})
	m.applyEvent(driver.Event{File: "unknown.bean", Status: driver.StatusDone})

	if m.percent() != 1.0 {
		t.Fatalf("percent = %v", m.percent())
	}
	m.done = true
	view := m.View()
	for _, want := range []string{"done: beanfmt (2/2)", "formatted", "error", "a.bean", "parse error at 1:3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q:\n%s", want, view)
		}
	}
}

func TestProgressPartialStage(t *testing.T) {
	m := NewProgressModel("t", []string{"x"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "x", Stage: driver.StageRead, Status: driver.StatusWorking})
	if p := m.percent(); p <= 0 || p >= 1 {
		t.Fatalf("percent while reading = %v", p)
	}
}

func TestVisibleRowsPrefersFailedAndActive(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.bean", i)
	}
	m := NewProgressModel("t", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "f25.bean", Stage: driver.StageFormat, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "f28.bean", Stage: driver.StageWrite, Status: driver.StatusWorking})

	rows, hidden := m.visibleRows()
	if len(rows) != maxRows || hidden != len(files)-maxRows {
		t.Fatalf("rows=%d hidden=%d", len(rows), hidden)
	}
	if rows[0].path != "f25.bean" || rows[1].path != "f28.bean" || rows[2].path != "f00.bean" {
		t.Fatalf("unexpected order: %s %s %s", rows[0].path, rows[1].path, rows[2].path)
	}
	if !strings.Contains(m.View(), "18 more") {
		t.Fatal("view must mention hidden files")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("ledger/2024/main.bean", 10); got != "ledger/..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("ledger/2024/main.bean", 3); got != "led" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestProgressQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
	for _, key := range keys {
		m := NewProgressModel("t", []string{"a.bean"}, nil)
		next, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command does not quit", key)
		}
		if !Interrupted(next) {
			t.Fatalf("%s: model not marked interrupted", key)
		}
	}

	m := NewProgressModel("t", []string{"a.bean"}, nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Fatal("other keys must be ignored")
	}
	if Interrupted(m) {
		t.Fatal("fresh model reports interruption")
	}
}
