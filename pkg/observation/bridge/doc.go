// Package bridge connects observations to concrete telemetry backends.
// Each handler targets one pkg/observability interface, so swapping the
// backend never touches instrumented code.
package bridge
