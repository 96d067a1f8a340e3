package implementation

import (
	"context"

	"github.com/jt828/observation/pkg/observability"
)

type Config struct {
	ServiceName string

	// MetricsAddr is where Start exposes /metrics. Empty disables the
	// endpoint.
	MetricsAddr string

	// OTLPEndpoint is the collector target for the tracing pipeline.
	// Empty disables tracing; Tracer() then returns nil.
	OTLPEndpoint string
}

// NewObservability assembles the default stack: zap logger, prometheus
// meter, OTLP-exporting tracer.
func NewObservability(cfg Config) (observability.Observability, error) {
	log, err := NewZapLogger()
	if err != nil {
		return nil, err
	}

	meter := NewPrometheusMeter()

	impl := &observabilityImplementation{
		log:         log,
		meter:       meter,
		metricsAddr: cfg.MetricsAddr,
	}

	if cfg.OTLPEndpoint != "" {
		tracer, shutdown, err := NewOtelTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			return nil, err
		}
		impl.tracer = tracer
		impl.traceClose = shutdown
	}

	return impl, nil
}
