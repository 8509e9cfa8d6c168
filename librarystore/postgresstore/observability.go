package postgresstore

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const (
	metricReadDuration         = "librarystore_read_duration_seconds"
	metricWriteDuration        = "librarystore_write_duration_seconds"
	metricRowsRead             = "librarystore_rows_read"
	metricRowsAffected         = "librarystore_rows_affected"
	metricDatabaseErrors       = "librarystore_errors_total"
	metricConcurrencyConflicts = "librarystore_concurrency_conflicts_total"

	spanNameRead  = "librarystore.read"
	spanNameWrite = "librarystore.write"

	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"
	spanAttrRowCount     = "row_count"
	spanAttrRowsAffected = "rows_affected"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeBuildStatement = "build_statement_failed"
	errorTypeQuery          = "query_failed"
	errorTypeScan           = "scan_failed"
	errorTypeExec           = "exec_failed"
)

// logQueryWithDuration logs SQL statements with execution time at debug level
// on whichever loggers are configured.
func (ls LibraryStore) logQueryWithDuration(
	ctx context.Context,
	sqlStatement string,
	action string,
	duration time.Duration,
) {
	if ls.logger != nil {
		ls.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, ls.toMilliseconds(duration), logAttrQuery, sqlStatement)
	}

	if ls.contextualLogger != nil {
		ls.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, ls.toMilliseconds(duration), logAttrQuery, sqlStatement)
	}
}

// logOperation logs operational information at info level on whichever loggers are configured.
func (ls LibraryStore) logOperation(ctx context.Context, action string, args ...any) {
	if ls.logger != nil {
		ls.logger.Info(logMsgOperation+action, args...)
	}

	if ls.contextualLogger != nil {
		ls.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level on whichever loggers are configured.
func (ls LibraryStore) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if ls.logger != nil {
		ls.logger.Error(message, allArgs...)
	}

	if ls.contextualLogger != nil {
		ls.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (ls LibraryStore) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordErrorMetricsContext records error metrics with context if the collector supports it.
func (ls LibraryStore) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	// Use context-aware method if available
	if contextualCollector, ok := ls.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		ls.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (ls LibraryStore) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := ls.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		ls.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordValueMetricsContext records value metrics with context if the collector supports it.
func (ls LibraryStore) recordValueMetricsContext(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {
	if ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := ls.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
	} else {
		ls.metricsCollector.RecordValue(metricName, value, labels)
	}
}

// recordConcurrencyConflictMetrics records conflict metrics if the collector is configured.
func (ls LibraryStore) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"conflict_type":   "concurrency",
	}

	if contextualCollector, ok := ls.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		ls.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (ls LibraryStore) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, librarystore.SpanContext) {
	if ls.tracingCollector != nil {
		return ls.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (ls LibraryStore) finishTraceSpan(
	spanCtx librarystore.SpanContext,
	status string,
	attrs map[string]string,
) {
	if ls.tracingCollector != nil && spanCtx != nil {
		ls.tracingCollector.FinishSpan(spanCtx, status, attrs)
	}
}

// === Observer Pattern ===
// These observers encapsulate the span, metric and log lifecycle of one store
// operation, so the read and write methods stay focused on SQL and scanning.

// readObserver bundles tracing, metrics and operation logging for one read.
type readObserver struct {
	ls        LibraryStore
	ctx       context.Context
	operation string
	span      librarystore.SpanContext
	start     time.Time
}

// writeObserver bundles tracing, metrics and operation logging for one guarded write.
type writeObserver struct {
	ls        LibraryStore
	ctx       context.Context
	operation string
	span      librarystore.SpanContext
	start     time.Time
}

// startReadObservation creates a new observer for a read operation.
func (ls LibraryStore) startReadObservation(ctx context.Context, operation string) (*readObserver, context.Context) {
	newCtx, span := ls.startTraceSpan(ctx, spanNameRead, map[string]string{spanAttrOperation: operation})

	return &readObserver{
		ls:        ls,
		ctx:       newCtx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, newCtx
}

// startWriteObservation creates a new observer for a guarded write operation.
func (ls LibraryStore) startWriteObservation(ctx context.Context, operation string) (*writeObserver, context.Context) {
	newCtx, span := ls.startTraceSpan(ctx, spanNameWrite, map[string]string{spanAttrOperation: operation})

	return &writeObserver{
		ls:        ls,
		ctx:       newCtx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, newCtx
}

// finishSuccess completes the read observation for successful operations.
func (ro *readObserver) finishSuccess(rowCount int) {
	duration := time.Since(ro.start)

	ro.ls.recordDurationMetricsContext(ro.ctx, metricReadDuration, duration, ro.operation, statusSuccess)
	ro.ls.recordValueMetricsContext(ro.ctx, metricRowsRead, float64(rowCount), ro.operation, statusSuccess)

	if ro.span != nil {
		ro.span.SetStatus(statusSuccess)
		ro.span.AddAttribute(spanAttrRowCount, fmt.Sprintf("%d", rowCount))
		ro.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", ro.ls.toMilliseconds(duration)))
	}

	ro.ls.finishTraceSpan(ro.span, statusSuccess, map[string]string{
		spanAttrRowCount: fmt.Sprintf("%d", rowCount),
	})

	ro.ls.logOperation(
		ro.ctx,
		logMsgReadCompleted,
		logAttrOperation, ro.operation,
		logAttrRowCount, rowCount,
		logAttrDurationMS, ro.ls.toMilliseconds(duration),
	)
}

// finishError completes the read observation with error details.
func (ro *readObserver) finishError(errorType string) {
	duration := time.Since(ro.start)

	ro.ls.recordDurationMetricsContext(ro.ctx, metricReadDuration, duration, ro.operation, statusError)
	ro.ls.recordErrorMetricsContext(ro.ctx, ro.operation, errorType)

	if ro.span != nil {
		ro.span.SetStatus(statusError)
		ro.span.AddAttribute(spanAttrErrorType, errorType)
		ro.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", ro.ls.toMilliseconds(duration)))
	}

	ro.ls.finishTraceSpan(ro.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

// finishSuccess completes the write observation for successful operations.
func (wo *writeObserver) finishSuccess(rowsAffected rowsAffectedInt64) {
	duration := time.Since(wo.start)

	wo.ls.recordDurationMetricsContext(wo.ctx, metricWriteDuration, duration, wo.operation, statusSuccess)
	wo.ls.recordValueMetricsContext(wo.ctx, metricRowsAffected, float64(rowsAffected), wo.operation, statusSuccess)

	if wo.span != nil {
		wo.span.SetStatus(statusSuccess)
		wo.span.AddAttribute(spanAttrRowsAffected, fmt.Sprintf("%d", rowsAffected))
		wo.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", wo.ls.toMilliseconds(duration)))
	}

	wo.ls.finishTraceSpan(wo.span, statusSuccess, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
	})

	wo.ls.logOperation(
		wo.ctx,
		logMsgChangeApplied,
		logAttrOperation, wo.operation,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, wo.ls.toMilliseconds(duration),
	)
}

// finishConflict completes the write observation for a concurrency conflict.
// Conflicts are expected under contention, so this logs at info level and
// records the dedicated conflict counter instead of an error.
func (wo *writeObserver) finishConflict() {
	duration := time.Since(wo.start)

	wo.ls.recordDurationMetricsContext(wo.ctx, metricWriteDuration, duration, wo.operation, statusConflict)
	wo.ls.recordConcurrencyConflictMetrics(wo.ctx, wo.operation)

	if wo.span != nil {
		wo.span.SetStatus(statusConflict)
		wo.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", wo.ls.toMilliseconds(duration)))
	}

	wo.ls.finishTraceSpan(wo.span, statusConflict, nil)

	wo.ls.logOperation(
		wo.ctx,
		logMsgConcurrencyConflict,
		logAttrOperation, wo.operation,
		logAttrRowsAffected, rowsAffectedInt64(0),
	)
}

// finishError completes the write observation with error details.
func (wo *writeObserver) finishError(errorType string) {
	duration := time.Since(wo.start)

	wo.ls.recordDurationMetricsContext(wo.ctx, metricWriteDuration, duration, wo.operation, statusError)
	wo.ls.recordErrorMetricsContext(wo.ctx, wo.operation, errorType)

	if wo.span != nil {
		wo.span.SetStatus(statusError)
		wo.span.AddAttribute(spanAttrErrorType, errorType)
		wo.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", wo.ls.toMilliseconds(duration)))
	}

	wo.ls.finishTraceSpan(wo.span, statusError, map[string]string{spanAttrErrorType: errorType})
}
