package librarystore

import (
	"context"
	"time"
)

// Logger receives the store's SQL debug lines, operational messages and
// errors. log/slog satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware variant of Logger. Backends that
// correlate log lines with the active trace read the trace and span IDs
// from the context. log/slog satisfies this one directly as well.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector receives durations, counters and gauge-like values from
// store operations. The interface carries no backend types, so any metrics
// system can sit behind it.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector adds context-aware recording on top of
// MetricsCollector, for backends that attach exemplars or trace metadata to
// measurements. The store prefers the context methods when the collector
// provides them and falls back to the plain ones otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext is a handle to a started span. It picks up attributes while
// the operation runs and is closed through the TracingCollector.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector starts and finishes spans around store operations. Like
// the other collector interfaces it names no backend types, so it can be
// implemented for OpenTelemetry as well as for plain test doubles.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}
