package bridge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jt828/observation/pkg/observability/implementation"
	"github.com/jt828/observation/pkg/observation"
	"github.com/jt828/observation/pkg/observation/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracingSetup() (*tracetest.InMemoryExporter, *observation.Registry) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := implementation.NewOtelTracerFromProvider(tp, "test")

	reg := observation.NewRegistry()
	reg.RegisterHandler(bridge.NewTracingHandler(tracer))
	return exporter, reg
}

func TestTracingHandler(t *testing.T) {
	t.Run("one span per observation, named on stop", func(t *testing.T) {
		exporter, reg := newTracingSetup()

		_, obs := observation.Start(context.Background(), "user.create", reg)
		obs.ContextualName("creating user jdoe")
		obs.Stop()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "creating user jdoe", spans[0].Name)
	})

	t.Run("nested observations nest spans", func(t *testing.T) {
		exporter, reg := newTracingSetup()

		octx, parent := observation.Start(context.Background(), "parent", reg)
		_, child := observation.Start(octx, "child", reg)
		child.Stop()
		parent.Stop()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		childSpan, parentSpan := spans[0], spans[1]
		assert.Equal(t, "child", childSpan.Name)
		assert.Equal(t, parentSpan.SpanContext.SpanID(), childSpan.Parent.SpanID())
		assert.Equal(t, parentSpan.SpanContext.TraceID(), childSpan.SpanContext.TraceID())
	})

	t.Run("key-values become span attributes", func(t *testing.T) {
		exporter, reg := newTracingSetup()

		_, obs := observation.Start(context.Background(), "op", reg,
			observation.WithLowCardinalityKeyValue("http.method", "GET"),
			observation.WithHighCardinalityKeyValue("http.url", "/users/42"),
		)
		obs.Stop()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Contains(t, spans[0].Attributes, attribute.String("http.method", "GET"))
		assert.Contains(t, spans[0].Attributes, attribute.String("http.url", "/users/42"))
	})

	t.Run("errors and events land on the span", func(t *testing.T) {
		exporter, reg := newTracingSetup()

		_, obs := observation.Start(context.Background(), "op", reg)
		obs.Event(observation.NewEvent("retry.attempt"))
		obs.Error(errors.New("boom"))
		obs.Stop()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		names := make([]string, 0, len(spans[0].Events))
		for _, e := range spans[0].Events {
			names = append(names, e.Name)
		}
		assert.Contains(t, names, "retry.attempt")
		assert.Contains(t, names, "exception")
	})

	t.Run("the span is reachable from the observation context", func(t *testing.T) {
		_, reg := newTracingSetup()

		_, obs := observation.Start(context.Background(), "op", reg)
		assert.NotNil(t, bridge.SpanFromContext(obs.Context()))
		obs.Stop()
	})

	t.Run("no span without a tracing handler", func(t *testing.T) {
		reg := observation.NewRegistry()

		_, obs := observation.Start(context.Background(), "op", reg)
		assert.Nil(t, bridge.SpanFromContext(obs.Context()))
		obs.Stop()
	})
}
