package observable

import (
	"context"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// QueryWrapper decorates a query handler with metrics, tracing, and logging,
// the read-side counterpart of CommandWrapper. Queries have no soft
// rejections and report no retries, so the outcome space is smaller: success
// or a classified error.
type QueryWrapper[Q shell.Query, R any] struct {
	coreHandler      shell.CoreQueryHandler[Q, R]
	queryType        string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// QueryOption configures a QueryWrapper.
type QueryOption[Q shell.Query, R any] func(*QueryWrapper[Q, R]) error

// WithQueryMetrics sets the metrics collector.
func WithQueryMetrics[Q shell.Query, R any](collector shell.MetricsCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithQueryTracing sets the tracing collector.
func WithQueryTracing[Q shell.Query, R any](collector shell.TracingCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithQueryContextualLogging sets the contextual logger.
func WithQueryContextualLogging[Q shell.Query, R any](logger shell.ContextualLogger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithQueryLogging sets the basic logger.
func WithQueryLogging[Q shell.Query, R any](logger shell.Logger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.logger = logger
		return nil
	}
}

// NewQueryWrapper wraps coreHandler with the configured observability
// collectors. The query type label comes from the zero value of Q.
func NewQueryWrapper[Q shell.Query, R any](
	coreHandler shell.CoreQueryHandler[Q, R],
	opts ...QueryOption[Q, R],
) (*QueryWrapper[Q, R], error) {
	var zeroQuery Q

	wrapper := &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zeroQuery.QueryType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle runs the wrapped handler and translates its outcome into metrics, a
// span, and log records. The result and error pass through unchanged.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	startedAt := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, w.queryType)
	shell.LogQueryStart(ctx, w.logger, w.contextualLogger, w.queryType)

	result, err := w.coreHandler.Handle(ctx, query)

	w.finish(ctx, err, time.Since(startedAt), span)

	return result, err
}

// finish emits one status for the outcome across all configured collectors.
func (w *QueryWrapper[Q, R]) finish(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := classifyQueryOutcome(err)

	shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, status, duration)
	shell.FinishQuerySpan(w.tracingCollector, span, status, duration, err)

	if err != nil {
		shell.LogQueryError(ctx, w.logger, w.contextualLogger, w.queryType, err)
		return
	}

	shell.LogQuerySuccess(ctx, w.logger, w.contextualLogger, w.queryType, status, duration)
}

// classifyQueryOutcome maps the handler error onto a single status label.
func classifyQueryOutcome(err error) string {
	switch {
	case err == nil:
		return shell.StatusSuccess
	case shell.IsCancellationError(err):
		return shell.StatusCanceled
	case shell.IsTimeoutError(err):
		return shell.StatusTimeout
	default:
		return shell.StatusError
	}
}
