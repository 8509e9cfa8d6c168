package returnbook

import (
	"errors"
	"fmt"

	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the currently persisted facts the return decision runs against.
// The handler loads it from the store; tests construct it directly.
type State struct {
	// Loan is the loan being closed.
	Loan core.Loan

	// Book is the catalog entry the loan references, loaded to verify that
	// releasing the copy cannot push availability past the total.
	Book core.Book
}

// Decide implements the business logic to determine whether a loan should be closed.
// This is a pure function with no side effects - it takes the loaded state and a command
// and returns the state change that should be applied based on the business rules.
//
// The fine is frozen here: it is computed as of the return date and carried on
// the change, so later report runs can never grow it.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID and the book it references
//	WHEN: ReturnBook command is received
//	THEN: BookReturned change closing the loan with the frozen fine is generated
//	ERROR: InvalidLoanState if the loan has already been returned
//	ERROR: InventoryViolation if every copy is already on the shelf
func Decide(current State, command Command, policy core.LoanPolicy) core.DecisionResult {
	if current.Loan.IsReturned() {
		return core.ErrorDecision(errors.Join(
			core.ErrInvalidLoanState,
			fmt.Errorf("loan %s has already been returned", current.Loan.ID),
		))
	}

	if current.Book.AllCopiesOnShelf() {
		return core.ErrorDecision(errors.Join(
			core.ErrInventoryViolation,
			fmt.Errorf("book %s has every copy on the shelf already", current.Book.ID),
		))
	}

	returnedOn := core.ToDate(command.OccurredAt)
	fine := current.Loan.ComputeFine(returnedOn, policy.FinePerDayRate)

	return core.SuccessDecision(
		core.BuildBookReturned(
			current.Loan.ID,
			returnedOn,
			command.Condition,
			command.Notes,
			fine,
			command.OccurredAt,
		),
	)
}
