package trace

import (
	"time"
)

// Attr is one key/value pair attached to a span end event. Attrs keep the
// order in which they were added.
type Attr struct {
	Key   string
	Value string
}

// Span is an open begin/end pair. A span that was filtered out by the level
// still remembers its tracer, so Child works uniformly down the tree.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// Begin starts a span under the span with id parent (0 for a root) and
// emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil {
		t = Nop
	}
	s := &Span{tracer: t, parent: parent, scope: scope, name: name}
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return s
	}
	s.id = nextSpanID()
	s.started = time.Now()
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

// Child starts a span nested under s on the same tracer.
func (s *Span) Child(scope Scope, name string) *Span {
	if s == nil {
		return Begin(Nop, scope, name, 0)
	}
	return Begin(s.tracer, scope, name, s.id)
}

// Attr records key=value for the end event. No-op on inert spans.
func (s *Span) Attr(key, value string) *Span {
	if s.live() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the span duration; 0 for inert spans.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Attrs:    s.attrs,
	})
	return dur
}

// ID returns the span id; 0 when the span was not emitted.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) live() bool {
	return s != nil && s.id != 0
}
