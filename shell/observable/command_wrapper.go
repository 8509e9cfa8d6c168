package observable

import (
	"context"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// CommandWrapper decorates a command handler with metrics, tracing, and
// logging. The wrapped handler stays free of instrumentation; outcome
// classification happens entirely here, from the HandlerResult and error it
// returns.
type CommandWrapper[C shell.Command] struct {
	coreHandler      shell.CoreCommandHandler[C]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// CommandOption configures a CommandWrapper.
type CommandOption[C shell.Command] func(*CommandWrapper[C]) error

// WithCommandMetrics sets the metrics collector.
func WithCommandMetrics[C shell.Command](collector shell.MetricsCollector) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandTracing sets the tracing collector.
func WithCommandTracing[C shell.Command](collector shell.TracingCollector) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger.
func WithCommandContextualLogging[C shell.Command](logger shell.ContextualLogger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger.
func WithCommandLogging[C shell.Command](logger shell.Logger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.logger = logger
		return nil
	}
}

// NewCommandWrapper wraps coreHandler with the configured observability
// collectors. The command type label comes from the zero value of C, so each
// wrapper instance is bound to exactly one command type.
func NewCommandWrapper[C shell.Command](
	coreHandler shell.CoreCommandHandler[C],
	opts ...CommandOption[C],
) (*CommandWrapper[C], error) {
	var zeroCommand C

	wrapper := &CommandWrapper[C]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle runs the wrapped handler and translates its result into metrics, a
// span, and log records. The result and error pass through unchanged.
func (w *CommandWrapper[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	startedAt := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)

	w.recordRetries(ctx, result)
	w.finish(ctx, result, err, time.Since(startedAt), span)

	return result, err
}

// finish emits one status for the outcome across all configured collectors.
func (w *CommandWrapper[C]) finish(
	ctx context.Context,
	result shell.HandlerResult,
	err error,
	duration time.Duration,
	span shell.SpanContext,
) {
	status := classifyCommandOutcome(result, err)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishCommandSpan(w.tracingCollector, span, status, duration, err)

	switch {
	case err != nil:
		shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, err)
	case result.Rejected:
		shell.LogCommandRejected(ctx, w.logger, w.contextualLogger, w.commandType, result.RejectionReason, duration)
	default:
		shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, status, duration)
	}
}

// classifyCommandOutcome maps the handler outcome onto a single status
// label. Soft rejections and idempotent replays count as completed work, not
// errors.
func classifyCommandOutcome(result shell.HandlerResult, err error) string {
	switch {
	case err == nil && result.Rejected:
		return shell.StatusRejected
	case err == nil && result.Idempotent:
		return shell.StatusIdempotent
	case err == nil:
		return shell.StatusSuccess
	case shell.IsCancellationError(err):
		return shell.StatusCanceled
	case shell.IsTimeoutError(err):
		return shell.StatusTimeout
	case shell.IsConcurrencyConflictError(err):
		return shell.StatusConcurrencyConflict
	default:
		return shell.StatusError
	}
}

// recordRetries publishes the retry metadata the handler reported in its
// result.
func (w *CommandWrapper[C]) recordRetries(ctx context.Context, result shell.HandlerResult) {
	if w.metricsCollector == nil {
		return
	}

	if result.RetryAttempts > 1 {
		w.incrementCounter(ctx, shell.CommandHandlerRetriesMetric,
			shell.BuildRetryLabels(w.commandType, result.RetryAttempts-1, result.LastErrorType))

		w.recordDuration(ctx, shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay,
			map[string]string{shell.LogAttrCommandType: w.commandType})
	}

	if result.RetriesExhausted {
		w.incrementCounter(ctx, shell.CommandHandlerMaxRetriesReachedMetric,
			map[string]string{shell.LogAttrCommandType: w.commandType})
	}
}

// incrementCounter upgrades to the contextual collector when the configured
// one supports it.
func (w *CommandWrapper[C]) incrementCounter(ctx context.Context, metricName string, labels map[string]string) {
	if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	w.metricsCollector.IncrementCounter(metricName, labels)
}

// recordDuration upgrades to the contextual collector when the configured
// one supports it.
func (w *CommandWrapper[C]) recordDuration(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	w.metricsCollector.RecordDuration(metricName, duration, labels)
}
