package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"beanfmt/internal/driver"
	"beanfmt/internal/ui"
)

var errInterrupted = errors.New("interrupted")

type formatOutcome struct {
	results []driver.FileResult
	err     error
}

func runFormatWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.SinkFunc(func(evt driver.Event) {
			select {
			case events <- evt:
			case <-ctx.Done():
			}
		})
		res, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Interrupted(final) {
		cancel()
	}
	// воркеры не должны висеть на полном канале после выхода экрана
	for range events {
	}
	outcome := <-outcomeCh
	switch {
	case uiErr != nil:
		return outcome.results, uiErr
	case ui.Interrupted(final):
		return outcome.results, errInterrupted
	}
	return outcome.results, outcome.err
}
