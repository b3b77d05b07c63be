package trace

import (
	"context"
	"maps"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// nextSeq returns a process-wide monotonically increasing sequence number.
func nextSeq() uint64 { return seqCounter.Add(1) }

// Span tracks one begin/end pair. A nil or disabled span ignores every call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	file    string
	name    string
	started time.Time
	extra   map[string]string
}

// Begin opens a span under the span stored in ctx, using ctx's tracer and
// file, and returns a context in which the new span is the parent.
// A span filtered out by the level is inert but still returned.
func Begin(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	f := frameOf(ctx)
	if !Enabled(f.tracer) || !f.tracer.Level().ShouldEmit(scope) {
		return &Span{}, ctx
	}
	s := &Span{
		tracer:  f.tracer,
		id:      spanCounter.Add(1),
		parent:  f.span,
		scope:   scope,
		file:    f.file,
		name:    name,
		started: time.Now(),
	}
	s.emit(KindSpanBegin, scope, s.started, name, "", nil)
	next := f
	next.span = s.id
	return s, withFrame(ctx, next)
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil
}

func (s *Span) emit(kind Kind, scope Scope, at time.Time, name, detail string, extra map[string]string) {
	ev := &Event{
		Time:   at,
		Kind:   kind,
		Scope:  scope,
		File:   s.file,
		Name:   name,
		Detail: detail,
		Extra:  extra,
	}
	if kind == KindPoint {
		ev.ParentID = s.id
	} else {
		ev.SpanID, ev.ParentID = s.id, s.parent
	}
	s.tracer.Emit(ev)
}

// End emits the end event carrying detail and the accumulated extras,
// and returns how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, s.scope, now, s.name, detail, maps.Clone(s.extra))
	return now.Sub(s.started)
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// Point emits an instant event nested under s.
func (s *Span) Point(scope Scope, name, detail string) {
	if !s.live() || !s.tracer.Level().ShouldEmit(scope) {
		return
	}
	s.emit(KindPoint, scope, time.Now(), name, detail, nil)
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
