package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanFromContext returns the innermost span opened with StartSpan, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// StartSpan opens a span under the span carried by ctx, or a root span on
// the tracer of ctx, and returns a context carrying the new span.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	var span *Span
	if parent := SpanFromContext(ctx); parent != nil {
		span = parent.Child(scope, name)
	} else {
		span = Begin(FromContext(ctx), scope, name, 0)
	}
	return context.WithValue(ctx, spanKey{}, span), span
}
