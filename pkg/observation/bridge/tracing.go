package bridge

import (
	"github.com/jt828/observation/pkg/observability"
	"github.com/jt828/observation/pkg/observation"
)

type spanKey struct{}

// TracingHandler opens one span per observation. The span starts under
// the observation's request context, so nested observations produce
// nested spans, and the span-bearing context is written back for
// downstream propagation. Key-values become span attributes and the span
// is renamed to the final contextual name on stop.
type TracingHandler struct {
	tracer observability.Tracer
}

func NewTracingHandler(tracer observability.Tracer) *TracingHandler {
	return &TracingHandler{tracer: tracer}
}

// SpanFromContext returns the span the TracingHandler opened for this
// observation, or nil.
func SpanFromContext(c *observation.Context) observability.Span {
	if v, ok := c.Get(spanKey{}); ok {
		if span, ok := v.(observability.Span); ok {
			return span
		}
	}
	return nil
}

func (h *TracingHandler) Supports(c *observation.Context) bool {
	return h.tracer != nil
}

func (h *TracingHandler) OnStart(c *observation.Context) {
	ctx, span := h.tracer.Start(c.RequestContext(), c.ContextualName())
	c.SetRequestContext(ctx)
	c.Put(spanKey{}, span)
}

func (h *TracingHandler) OnEvent(e observation.Event, c *observation.Context) {
	if span := SpanFromContext(c); span != nil {
		span.AddEvent(e.String())
	}
}

func (h *TracingHandler) OnError(c *observation.Context) {
	if span := SpanFromContext(c); span != nil {
		span.RecordError(c.Error())
	}
}

func (h *TracingHandler) OnStop(c *observation.Context) {
	span := SpanFromContext(c)
	if span == nil {
		return
	}
	span.SetName(c.ContextualName())

	kvs := c.AllKeyValues()
	if len(kvs) > 0 {
		attrs := make([]observability.Label, 0, len(kvs))
		for _, kv := range kvs {
			attrs = append(attrs, observability.Label{Key: kv.Key, Value: kv.Value})
		}
		span.SetAttributes(attrs...)
	}
	span.End()
}
