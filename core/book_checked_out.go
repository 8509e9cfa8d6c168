package core

import "time"

// BookCheckedOutChangeType is the change type identifier.
const BookCheckedOutChangeType = "BookCheckedOut"

// BookCheckedOut represents one copy leaving the shelf as a new loan.
// Applying this change creates the loan row and decrements the book's
// available copies in a single guarded write.
type BookCheckedOut struct {
	Loan       Loan
	OccurredAt time.Time
}

// BuildBookCheckedOut creates a new BookCheckedOut change.
func BuildBookCheckedOut(loan Loan, occurredAt time.Time) BookCheckedOut {
	return BookCheckedOut{
		Loan:       loan,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c BookCheckedOut) ChangeType() string {
	return BookCheckedOutChangeType
}

// HasOccurredAt returns when this change occurred.
func (c BookCheckedOut) HasOccurredAt() time.Time {
	return c.OccurredAt
}
