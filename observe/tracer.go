package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// OperationMeta describes a remote operation for telemetry purposes.
type OperationMeta struct {
	Service  string // Remote service, e.g. "culr" (optional)
	Name     string // Operation name, e.g. "lookup" (required)
	Endpoint string // Remote endpoint (optional)
	AgencyID string // Requesting agency (optional)
}

// SpanName returns the deterministic span name for this operation.
// Format: <service>.remote.<name> or remote.<name>
func (m OperationMeta) SpanName() string {
	if m.Service != "" {
		return m.Service + ".remote." + m.Name
	}
	return "remote." + m.Name
}

// ID returns the qualified operation identifier.
func (m OperationMeta) ID() string {
	if m.Service != "" {
		return m.Service + "." + m.Name
	}
	return m.Name
}

// Validate checks that the operation name is set.
func (m OperationMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingOperationName
	}
	return nil
}

func (m OperationMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("op.id", m.ID()),
		attribute.String("op.name", m.Name),
	}
	if m.Service != "" {
		attrs = append(attrs, attribute.String("op.service", m.Service))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with operation-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new client span for the operation.
	StartSpan(ctx context.Context, meta OperationMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with operation metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta OperationMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("op.error", false))
	if meta.Endpoint != "" {
		attrs = append(attrs, attribute.String("server.address", meta.Endpoint))
	}
	if meta.AgencyID != "" {
		attrs = append(attrs, attribute.String("op.agency", meta.AgencyID))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("op.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta OperationMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
