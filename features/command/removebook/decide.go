package removebook

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the catalog and loan facts the decision needs.
// The command handler loads it from the library store; tests construct it
// directly.
type State struct {
	BookInCatalog bool
	OpenLoans     int
	TotalLoans    int
}

// Decide makes the business decision for removing a book from the catalog.
//
// Decision logic:
//
//	GIVEN: The catalog entry and the loans that reference it
//	WHEN:  RemoveBook command is received
//	THEN:  BookRemovedFromCatalog change is returned
//	REJECTED: When copies are still checked out
//	REJECTED: When any loan record references the book, loan history is never deleted
//	IDEMPOTENCY: If the book is not in the catalog, no change is returned
func Decide(current State, command Command) core.DecisionResult {
	if !current.BookInCatalog {
		return core.IdempotentDecision()
	}

	if current.OpenLoans > 0 {
		return core.RejectedDecision(core.RejectionBookHasOpenLoans)
	}

	if current.TotalLoans > 0 {
		return core.RejectedDecision(core.RejectionBookHasLoanHistory)
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(command.BookID.String(), command.OccurredAt))
}
