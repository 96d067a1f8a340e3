// Package instrument provides ready-made observations for common call
// sites: HTTP servers and clients, gRPC unary calls, database/sql, retries
// and circuit breakers. Each instrumentation emits conventionally named
// observations, so one registry configuration covers every entry point.
package instrument
