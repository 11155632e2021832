// Package observe provides the connector's logging, tracing and metrics.
//
// Logger is a small structured JSON logger that redacts credential
// fields. Tracer and Metrics wrap OpenTelemetry; Middleware combines all
// three around one remote operation. NewObserver builds real providers
// from Config, and every disabled subsystem falls back to a no-op.
package observe
