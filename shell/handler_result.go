package shell

import "time"

// HandlerResult is what a command handler reports back to the observable
// wrapper: the business outcome plus the retry metadata of the attempt.
// Idempotent and rejected operations are first-class outcomes here, not
// errors.
type HandlerResult struct {
	// Idempotent is true when the requested state already held and nothing
	// was written.
	Idempotent bool

	// Rejected is true when a business rule refused the operation.
	Rejected bool

	// RejectionReason names the refusing business rule, set only together
	// with Rejected.
	RejectionReason string

	// RetryAttempts counts all attempts, so 1 means no retries happened.
	RetryAttempts int

	// TotalRetryDelay is the time spent sleeping between attempts, excluding
	// the execution time itself.
	TotalRetryDelay time.Duration

	// LastErrorType classifies the error of the final attempt. One of
	// "none", "concurrency_conflict", "operation_rejected",
	// "context_canceled", "context_deadline_exceeded" or "other".
	LastErrorType string

	// RetriesExhausted is true when every attempt failed with a retryable
	// error and the attempt budget ran out.
	RetriesExhausted bool
}

// NewSuccessResult builds the result for an operation that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics)
}

// NewIdempotentResult builds the result for an operation that found its
// requested state already in place.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	result := resultFrom(retryMetrics)
	result.Idempotent = true

	return result
}

// NewRejectedResult builds the result for an operation refused by a business
// rule.
func NewRejectedResult(reason string, retryMetrics RetryMetrics) HandlerResult {
	result := resultFrom(retryMetrics)
	result.Rejected = true
	result.RejectionReason = reason

	return result
}

// NewErrorResult builds the result for a failed operation that still wants
// its retry metadata reported.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics)
}

// resultFrom carries the retry metadata into a plain success-shaped result.
func resultFrom(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
