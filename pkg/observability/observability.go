package observability

import "context"

// Observability bundles the three backends the bridge handlers write to.
// Start brings up ancillary servers (the metrics endpoint); Close flushes
// and shuts everything down.
type Observability interface {
	Close(ctx context.Context) error
	Logger() Logger
	Meter() Meter
	Start(ctx context.Context) error
	Tracer() Tracer
}
