package trace

import (
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

func nextSeq() uint64 { return globalSeq.Add(1) }

// Span tracks one logical operation from Begin to End or Fail.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	done     bool
}

// Begin starts a span under parent (0 for a root span). The begin event is
// subject to the tracer's level, but the span is still tracked so that a
// later Fail can be reported at LevelError.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:   t,
		id:       globalSpans.Add(1),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	return s.finish(detail, nil)
}

// Fail closes the span as failed.
func (s *Span) Fail(err error) time.Duration {
	return s.finish("", err)
}

func (s *Span) finish(detail string, err error) time.Duration {
	if s == nil || s.done || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	s.done = true
	dur := time.Since(s.started)
	ev := &Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  dur,
	}
	if err != nil {
		ev.Err = err.Error()
	}
	s.tracer.Emit(ev)
	return dur
}

// ID returns the span ID, 0 for spans of a disabled tracer.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
