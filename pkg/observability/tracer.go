package observability

import "context"

type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is the minimal surface the tracing bridge needs. SetName exists
// because an observation's final contextual name is only known when it
// stops.
type Span interface {
	End()
	RecordError(err error)
	SetName(name string)
	SetAttributes(attrs ...Label)
	AddEvent(name string)
}
