package checkoutbook

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the currently persisted facts the checkout decision runs against.
// The handler loads it from the store; tests construct it directly.
type State struct {
	// LoanAlreadyRecorded is true when a loan with the command's id exists,
	// which marks the command as a replay.
	LoanAlreadyRecorded bool

	// Member is the borrower, with the derived count of open loans populated.
	Member core.Member

	// Book is the catalog entry with its current availability.
	Book core.Book
}

// Decide implements the business logic to determine whether a book should be checked out to a member.
// This is a pure function with no side effects - it takes the loaded state and a command
// and returns the state change that should be applied based on the business rules.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with MemberID
//	WHEN: CheckOutBook command is received
//	THEN: BookCheckedOut change with a new loan due in LoanPeriodDays is generated
//	REJECTED: "MemberNotActive" if the member account has been deactivated
//	REJECTED: "LimitExceeded" if the member's open loans have reached their borrowing limit
//	REJECTED: "NoCopiesAvailable" if every copy of the book is checked out
//	IDEMPOTENCY: If the loan id is already recorded, no change is generated (no-op)
func Decide(current State, command Command, policy core.LoanPolicy) core.DecisionResult {
	if current.LoanAlreadyRecorded {
		return core.IdempotentDecision() // idempotency - this checkout has already been recorded
	}

	eligibility := policy.EvaluateEligibility(current.Member, current.Book)
	if !eligibility.Allowed {
		return core.RejectedDecision(eligibility.Reasons[0])
	}

	loan := core.Loan{
		ID:           command.LoanID.String(),
		BookID:       command.BookID.String(),
		MemberID:     command.MemberID.String(),
		CheckedOutOn: core.ToDate(command.OccurredAt),
		DueOn:        policy.DueDateFor(command.OccurredAt),
	}

	return core.SuccessDecision(
		core.BuildBookCheckedOut(loan, command.OccurredAt),
	)
}
