package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// Metric names emitted by the observable handler wrappers. Durations are
// histograms in seconds, everything else is a counter.
const (
	// CommandHandlerDurationMetric measures how long a command handler ran.
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric counts every command handler call, labeled
	// with its final status.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	// CommandHandlerIdempotentMetric counts commands that found their
	// requested state already in place.
	CommandHandlerIdempotentMetric = "commandhandler_idempotent_operations_total"

	// CommandHandlerRejectedMetric counts commands refused by a business rule.
	CommandHandlerRejectedMetric = "commandhandler_rejected_operations_total"

	// CommandHandlerCanceledMetric counts commands canceled by their context.
	CommandHandlerCanceledMetric = "commandhandler_canceled_operations_total"

	// CommandHandlerTimeoutMetric counts commands that hit their deadline.
	CommandHandlerTimeoutMetric = "commandhandler_timeout_operations_total"

	// CommandHandlerConcurrencyConflictMetric counts commands that lost an
	// optimistic concurrency check.
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric counts individual retry attempts, labeled
	// with command_type, attempt_number and error_type. Cardinality stays
	// small: commands times the attempt budget times a handful of error
	// types. rate() on it alerts on conflict storms.
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric measures the backoff delay before each
	// retry, labeled with command_type and attempt_number. Its distribution
	// shows whether the exponential backoff spreads contenders out.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric counts commands that ran out of
	// attempts, labeled with command_type and final_error_type. Any increase
	// here is worth an alert.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	// QueryHandlerDurationMetric measures how long a query handler ran.
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric counts every query handler call, labeled with
	// its final status.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// QueryHandlerCanceledMetric counts queries canceled by their context.
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"

	// QueryHandlerTimeoutMetric counts queries that hit their deadline.
	QueryHandlerTimeoutMetric = "queryhandler_timeout_operations_total"
)

// Status values used in metric labels, log attributes and span attributes.
const (
	// StatusSuccess marks an operation that completed and changed state.
	StatusSuccess = "success"

	// StatusError marks an operation that failed with an error.
	StatusError = "error"

	// StatusIdempotent marks an operation that had nothing left to do.
	StatusIdempotent = "idempotent"

	// StatusRejected marks an operation refused by a business rule.
	StatusRejected = "rejected"

	// StatusCanceled marks an operation canceled through its context.
	StatusCanceled = "canceled"

	// StatusTimeout marks an operation that exceeded its context deadline.
	StatusTimeout = "timeout"

	// StatusConcurrencyConflict marks an operation that lost an optimistic
	// concurrency check.
	StatusConcurrencyConflict = "concurrency_conflict"
)

// Log messages and attribute keys shared by the handler wrappers, so
// dashboards can rely on stable field names.
const (
	// LogMsgCommandStarted opens every command handling log pair.
	LogMsgCommandStarted = "command handler started"

	// LogMsgCommandCompleted closes command handling, success and soft
	// outcomes included.
	LogMsgCommandCompleted = "command handler completed"

	// LogMsgCommandFailed reports a command handler error.
	LogMsgCommandFailed = "command handler failed"

	// LogMsgQueryStarted opens every query handling log pair.
	LogMsgQueryStarted = "query handler started"

	// LogMsgQueryCompleted closes successful query handling.
	LogMsgQueryCompleted = "query handler completed"

	// LogMsgQueryFailed reports a query handler error.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrCommandType carries the command name.
	LogAttrCommandType = "command_type"

	// LogAttrQueryType carries the query name.
	LogAttrQueryType = "query_type"

	// LogAttrStatus carries the final status value.
	LogAttrStatus = "status"

	// LogAttrDurationMS carries the handling duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrBusinessOutcome distinguishes success from idempotent and
	// rejected completions.
	LogAttrBusinessOutcome = "business_outcome"

	// LogAttrError carries the error text.
	LogAttrError = "error"

	// LogAttrReason carries the rejection reason.
	LogAttrReason = "reason"
)

// Span names used by the handler wrappers.
const (
	// SpanNameCommandHandle is the span around command handling.
	SpanNameCommandHandle = "commandhandler.handle"

	// SpanNameQueryHandle is the span around query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// The shell reuses the librarystore observability contracts, so one
// collector implementation can serve the store and the handler wrappers.

// MetricsCollector receives handler durations and counters.
type MetricsCollector = librarystore.MetricsCollector

// ContextualMetricsCollector adds context-aware recording to MetricsCollector.
type ContextualMetricsCollector = librarystore.ContextualMetricsCollector

// TracingCollector starts and finishes handler spans.
type TracingCollector = librarystore.TracingCollector

// SpanContext is a handle to a started span.
type SpanContext = librarystore.SpanContext

// ContextualLogger logs with trace correlation through the context.
type ContextualLogger = librarystore.ContextualLogger

// Logger is the plain logging fallback.
type Logger = librarystore.Logger

// BuildCommandLabels builds the label set shared by all command metrics.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels builds the label set shared by all query metrics.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// BuildRetryLabels builds the label set for the per-attempt retry metrics.
func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"attempt_number":   fmt.Sprintf("%d", attemptNumber),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts a duration to fractional milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// commandOutcomeCounters maps the statuses that get a dedicated counter
// next to the shared calls metric.
var commandOutcomeCounters = map[string]string{
	StatusIdempotent:          CommandHandlerIdempotentMetric,
	StatusRejected:            CommandHandlerRejectedMetric,
	StatusCanceled:            CommandHandlerCanceledMetric,
	StatusTimeout:             CommandHandlerTimeoutMetric,
	StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
}

// queryOutcomeCounters is the query-side equivalent of commandOutcomeCounters.
var queryOutcomeCounters = map[string]string{
	StatusCanceled: QueryHandlerCanceledMetric,
	StatusTimeout:  QueryHandlerTimeoutMetric,
}

// RecordCommandMetrics records the duration histogram and the calls counter
// for one command handling, plus the dedicated counter when the status has
// one. A nil collector disables recording.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	emitDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	emitCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	if dedicated, ok := commandOutcomeCounters[status]; ok {
		emitCounter(ctx, collector, dedicated, labels)
	}
}

// RecordQueryMetrics records the duration histogram and the calls counter
// for one query handling, plus the dedicated counter when the status has
// one. A nil collector disables recording.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	emitDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	emitCounter(ctx, collector, QueryHandlerCallsMetric, labels)

	if dedicated, ok := queryOutcomeCounters[status]; ok {
		emitCounter(ctx, collector, dedicated, labels)
	}
}

// emitDuration prefers the context-aware recording method when the
// collector offers one.
func emitDuration(ctx context.Context, collector MetricsCollector, metric string, duration time.Duration, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)

		return
	}

	collector.RecordDuration(metric, duration, labels)
}

// emitCounter prefers the context-aware recording method when the collector
// offers one.
func emitCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)

		return
	}

	collector.IncrementCounter(metric, labels)
}

// StartCommandSpan opens the command handling span. With a nil collector it
// returns the context unchanged and a nil span.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
) (context.Context, SpanContext) {
	return startSpan(ctx, tracingCollector, SpanNameCommandHandle, LogAttrCommandType, commandType)
}

// StartQuerySpan opens the query handling span. With a nil collector it
// returns the context unchanged and a nil span.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	return startSpan(ctx, tracingCollector, SpanNameQueryHandle, LogAttrQueryType, queryType)
}

// FinishCommandSpan closes the command handling span with the outcome
// attributes. The error attribute is set only when err is non-nil.
func FinishCommandSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	finishSpan(tracingCollector, span, status, duration, err)
}

// FinishQuerySpan closes the query handling span with the outcome
// attributes. The error attribute is set only when err is non-nil.
func FinishQuerySpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	finishSpan(tracingCollector, span, status, duration, err)
}

func startSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	spanName string,
	typeAttr string,
	typeValue string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, spanName, map[string]string{typeAttr: typeValue})
}

func finishSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs the start of command handling.
func LogCommandStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, commandType)
}

// LogCommandSuccess logs command completion with its business outcome.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration))
}

// LogCommandRejected logs a refused command as a completion, since a
// rejection is an answer and not a failure.
func LogCommandRejected(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	reason string,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, StatusRejected,
		LogAttrReason, reason,
		LogAttrDurationMS, ToMilliseconds(duration))
}

// LogCommandError logs a command handler failure.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	logError(ctx, logger, contextualLogger, LogMsgCommandFailed,
		LogAttrCommandType, commandType,
		LogAttrError, err.Error())
}

// LogQueryStart logs the start of query handling.
func LogQueryStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, queryType)
}

// LogQuerySuccess logs query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	businessOutcome string,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration))
}

// LogQueryError logs a query handler failure.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
) {
	logError(ctx, logger, contextualLogger, LogMsgQueryFailed,
		LogAttrQueryType, queryType,
		LogAttrError, err.Error())
}

// logInfo prefers the contextual logger and falls back to the plain one.
// With neither configured the message is dropped.
func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)

		return
	}

	if logger != nil {
		logger.Info(msg, args...)
	}
}

// logError mirrors logInfo at error level.
func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)

		return
	}

	if logger != nil {
		logger.Error(msg, args...)
	}
}

// formatDurationMS renders a duration as milliseconds for span attributes,
// which only take strings.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// IsCancellationError reports whether the error came from context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError reports whether the error came from an exceeded deadline.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError reports whether the error carries the
// optimistic concurrency conflict sentinel.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, librarystore.ErrConcurrencyConflict)
}

// IsRejectionError reports whether the error carries the business rule
// rejection sentinel.
func IsRejectionError(err error) bool {
	return errors.Is(err, ErrOperationRejected)
}
