package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// TracingCollector implements librarystore.TracingCollector against the
// OpenTelemetry tracing API, turning store and handler operations into OTel
// spans with propagated trace context.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a tracing collector around the given tracer,
// which should come from the application's TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan opens an OTel span with the given name and start attributes and
// returns the span-carrying context together with a SpanContext handle.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, librarystore.SpanContext) {
	spanOptions := make([]trace.SpanStartOption, 0, len(attrs))
	for key, value := range attrs {
		spanOptions = append(spanOptions, trace.WithAttributes(attribute.String(key, value)))
	}

	spanCtx, span := t.tracer.Start(ctx, name, spanOptions...)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan sets the final status and attributes on the span behind the
// handle and ends it. Handles from other collectors are ignored.
func (t *TracingCollector) FinishSpan(spanCtx librarystore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	for key, value := range attrs {
		otelSpanCtx.span.SetAttributes(attribute.String(key, value))
	}

	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

var _ librarystore.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements librarystore.SpanContext by wrapping an
// OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps one of the store or handler outcome strings onto the span.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus translates the outcome strings emitted by the store and the
// handler wrappers into OTel status codes. Idempotent replays and domain
// rejections are completed operations, not failures.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case "success", "idempotent", "rejected":
		s.span.SetStatus(codes.Ok, "")
	case "conflict", "concurrency_conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	case "canceled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

var _ librarystore.SpanContext = (*OTelSpanContext)(nil)
