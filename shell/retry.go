package shell

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrNilMetricsCollector is returned when a nil metrics collector is provided to WithMetrics.
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")

	// ErrEmptyCommandType is returned when an empty command type is provided to WithMetrics.
	ErrEmptyCommandType = errors.New("command type must not be empty")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc is the operation the retry loop drives.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics captures execution metadata from one retry loop run.
// Handlers fold it into their HandlerResult so wrappers can record retry
// behavior without reaching into the retry internals.
type RetryMetrics struct {
	// Attempts is the total number of attempts made (1 for no retries).
	Attempts int

	// TotalDelay is the cumulative time spent in backoff delays.
	TotalDelay time.Duration

	// LastErrorType describes the type of the final error encountered.
	LastErrorType string

	// RetriesExhausted indicates whether max attempts were reached with a retryable error.
	RetriesExhausted bool
}

// retryConfig holds the tuning knobs and the optional metrics sink for one
// retry loop run.
type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector MetricsCollector
	commandType      string
}

// RetryOption configures the retry loop.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts, first try included.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the delay before the first retry. Each further retry
// doubles it.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets how much random jitter is added on top of each
// backoff delay, as a fraction of the delay between 0.0 and 1.0.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithMetrics sets the collector the retry loop reports to. The command type
// labels every emitted metric.
func WithMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(config *retryConfig) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if commandType == "" {
			return ErrEmptyCommandType
		}

		config.metricsCollector = collector
		config.commandType = commandType

		return nil
	}
}

// RetryWithExponentialBackoff runs fn until it succeeds, fails permanently,
// or the attempt budget runs out. Only concurrency conflicts from guarded
// writes are retried; every other error returns immediately. The returned
// RetryMetrics describe the run regardless of outcome.
//
// With the defaults the waits are 10, 20, 40, 80 and 160 ms plus up to 30%
// jitter, roughly 300 ms worst case across all six attempts. The jitter
// spreads out competing writers that collided on the same rows.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {
	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetrics{}, err
		}
	}

	var metrics RetryMetrics
	var lastErr error

	for attempt := 1; attempt <= config.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := config.backoffDelay(attempt - 1)
			config.recordDelay(ctx, attempt-1, delay)

			select {
			case <-time.After(delay):
				metrics.TotalDelay += delay
			case <-ctx.Done():
				metrics.LastErrorType = errorTypeLabel(ctx.Err())

				return metrics, ctx.Err()
			}
		}

		metrics.Attempts = attempt
		lastErr = fn(ctx)
		metrics.LastErrorType = errorTypeLabel(lastErr)

		if lastErr == nil {
			return metrics, nil
		}

		if !isRetryable(lastErr) {
			return metrics, lastErr
		}

		if attempt < config.maxAttempts {
			config.recordRetry(ctx, attempt, lastErr)
		}
	}

	metrics.RetriesExhausted = true
	config.recordExhaustion(ctx, lastErr)

	return metrics, lastErr
}

// backoffDelay returns the wait before retry number retryNum (1-based): the
// base delay doubled per retry, plus jitter.
func (c *retryConfig) backoffDelay(retryNum int) time.Duration {
	delay := c.baseDelay * time.Duration(1<<(retryNum-1))
	jitter := rand.Float64() * float64(delay) * c.jitterFactor //nolint:gosec // jitter needs no cryptographic strength

	return delay + time.Duration(jitter)
}

func (c *retryConfig) recordDelay(ctx context.Context, retryNum int, delay time.Duration) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrCommandType: c.commandType,
		"attempt_number":   strconv.Itoa(retryNum),
	}

	if contextualCollector, ok := c.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandHandlerRetryDelayMetric, delay, labels)
		return
	}

	c.metricsCollector.RecordDuration(CommandHandlerRetryDelayMetric, delay, labels)
}

func (c *retryConfig) recordRetry(ctx context.Context, failedAttempt int, cause error) {
	c.incrementCounter(ctx, CommandHandlerRetriesMetric,
		BuildRetryLabels(c.commandType, failedAttempt, errorTypeLabel(cause)))
}

func (c *retryConfig) recordExhaustion(ctx context.Context, cause error) {
	c.incrementCounter(ctx, CommandHandlerMaxRetriesReachedMetric, map[string]string{
		LogAttrCommandType: c.commandType,
		"final_error_type": errorTypeLabel(cause),
	})
}

func (c *retryConfig) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if c.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := c.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	c.metricsCollector.IncrementCounter(metric, labels)
}

// isRetryable limits retries to optimistic lock conflicts. Timeouts and
// cancellations fail fast instead of piling more load on a struggling
// database, and business errors never change on a second try.
func isRetryable(err error) bool {
	return errors.Is(err, librarystore.ErrConcurrencyConflict)
}

// errorTypeLabel maps an error onto the label vocabulary used in retry
// metrics and handler results.
func errorTypeLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, librarystore.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, ErrOperationRejected):
		return "operation_rejected"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}
