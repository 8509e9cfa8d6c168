// Package oteladapters provides OpenTelemetry implementations of the
// librarystore observability interfaces, so a store can be wired into an
// existing OTel pipeline without hand-rolling adapters.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// SlogBridgeLogger implements librarystore.ContextualLogger on top of the
// OpenTelemetry slog bridge. Log records flow through the global OTel
// LoggerProvider and carry trace correlation automatically, which makes this
// the implementation to reach for first.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a contextual logger backed by the OTel slog
// bridge, registered under the given instrumentation name.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a contextual logger around an
// arbitrary slog.Handler. The handler is used as-is, without trace
// correlation; use NewSlogBridgeLogger when correlation matters.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// DebugContext logs a debug message with context.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ librarystore.ContextualLogger = (*SlogBridgeLogger)(nil)

// OTelLogger implements librarystore.ContextualLogger against the
// OpenTelemetry log API directly, for callers who manage their own
// log.Logger and want full control over record emission.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a contextual logger that emits through the given
// OpenTelemetry log.Logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// DebugContext logs a debug message with context.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emitRecord(ctx, log.SeverityDebug, msg, args...)
}

// InfoContext logs an info message with context.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emitRecord(ctx, log.SeverityInfo, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emitRecord(ctx, log.SeverityWarn, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emitRecord(ctx, log.SeverityError, msg, args...)
}

// emitRecord builds and emits one OTel log record. Args follow the slog
// convention of alternating keys and values; a trailing key without a value
// and non-string keys are skipped.
func (l *OTelLogger) emitRecord(ctx context.Context, severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(log.String(key, attrString(args[i+1])))
	}

	l.logger.Emit(ctx, record)
}

func attrString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return slog.AnyValue(v).String()
}

var _ librarystore.ContextualLogger = (*OTelLogger)(nil)
