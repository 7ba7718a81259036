package driver

import "time"

// Stage describes the step a file is in.
type Stage string

const (
	// StageRead loads the file from disk.
	StageRead Stage = "read"
	// StageFormat runs the lexer, parser, aligner and renderer.
	StageFormat Stage = "format"
	// StageWrite writes the backup and the formatted file.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file was reformatted (or would be, with --check).
	StatusDone Status = "done"
	// StatusUnchanged indicates the file was already canonical.
	StatusUnchanged Status = "unchanged"
	// StatusError indicates the file could not be formatted or written.
	StatusError Status = "error"
)

// Event reports the progress of one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink receives progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type Sink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

func emit(s Sink, evt Event) {
	if s != nil {
		s.OnEvent(evt)
	}
}
