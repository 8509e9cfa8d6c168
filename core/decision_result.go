package core

// DecisionResult is what a Decide function answers: exactly one of four
// outcomes, together with the data that outcome carries. Build it through
// IdempotentDecision, SuccessDecision, RejectedDecision or ErrorDecision
// rather than as a literal, so the outcome tag and its payload stay in sync.
type DecisionResult struct {
	Outcome string          // "idempotent", "success", "rejected", or "error"
	Change  StateChange     // nil unless the outcome is "success"
	Reason  RejectionReason // set only for rejected decisions
	Err     error           // set only for error decisions
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	rejectedOutcome   = "rejected"
	errorOutcome      = "error"
)

// IdempotentDecision answers that the requested state already holds, so
// there is nothing to write.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision answers with the state change to write.
func SuccessDecision(change StateChange) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Change:  change,
	}
}

// RejectedDecision answers that a business rule refused the command.
// Rejections are expected outcomes, not faults: no state change is applied
// and no error propagates.
func RejectedDecision(reason RejectionReason) DecisionResult {
	return DecisionResult{
		Outcome: rejectedOutcome,
		Reason:  reason,
	}
}

// ErrorDecision answers a hard violation, such as an invalid lifecycle
// transition or corrupted state.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasChangeToApply reports whether there is a state change to write to the store.
func (r DecisionResult) HasChangeToApply() bool {
	return r.Outcome == successOutcome
}

// IsRejected reports whether a business rule refused the command.
func (r DecisionResult) IsRejected() bool {
	return r.Outcome == rejectedOutcome
}

// HasError hands back the error for error outcomes and nil for all others.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
