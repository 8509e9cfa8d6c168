package settlefine

import (
	"errors"
	"fmt"

	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the currently persisted facts the settlement decision runs against.
type State struct {
	// Loan is the loan whose fine is being settled.
	Loan core.Loan
}

// Decide implements the business logic to determine whether a fine should be marked paid.
// This is a pure function with no side effects.
//
// The amount settled is recomputed from the loan's dates at the policy rate;
// for a returned loan it is frozen at the return date, so the amount cannot
// drift between the return and the payment.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: SettleFine command is received
//	THEN: FineSettled change carrying the frozen amount is generated
//	ERROR: InvalidLoanState if the loan is still open
//	ERROR: InvalidLoanState if the returned loan owes nothing
//	IDEMPOTENCY: If the fine is already marked paid, no change is generated (no-op)
func Decide(current State, command Command, policy core.LoanPolicy) core.DecisionResult {
	if current.Loan.FinePaid {
		return core.IdempotentDecision() // idempotency - the fine has already been settled
	}

	if !current.Loan.IsReturned() {
		return core.ErrorDecision(errors.Join(
			core.ErrInvalidLoanState,
			fmt.Errorf("loan %s is still open, a fine can only be settled after the return", current.Loan.ID),
		))
	}

	fine := current.Loan.ComputeFine(command.OccurredAt, policy.FinePerDayRate)
	if fine == 0 {
		return core.ErrorDecision(errors.Join(
			core.ErrInvalidLoanState,
			fmt.Errorf("loan %s owes no fine", current.Loan.ID),
		))
	}

	return core.SuccessDecision(
		core.BuildFineSettled(current.Loan.ID, fine, command.OccurredAt),
	)
}
