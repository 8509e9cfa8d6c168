package addbook

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the catalog facts the decision needs.
// The command handler loads it from the library store; tests construct it
// directly.
type State struct {
	BookAlreadyInCatalog bool
	ISBNUsedByOtherBook  bool
}

// Decide makes the business decision for adding a book to the catalog.
//
// Decision logic:
//
//	GIVEN: The catalog state for the book's id and ISBN
//	WHEN:  AddBook command is received
//	THEN:  BookAddedToCatalog change is returned
//	REJECTED: When the ISBN is already used by a different catalog entry
//	IDEMPOTENCY: If a book with the same id is already in the catalog, no change is returned
func Decide(current State, command Command) core.DecisionResult {
	if current.BookAlreadyInCatalog {
		return core.IdempotentDecision()
	}

	if current.ISBNUsedByOtherBook {
		return core.RejectedDecision(core.RejectionISBNAlreadyInCatalog)
	}

	return core.SuccessDecision(core.BuildBookAddedToCatalog(command.Book, command.OccurredAt))
}
