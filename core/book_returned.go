package core

import "time"

// BookReturnedChangeType is the change type identifier.
const BookReturnedChangeType = "BookReturned"

// BookReturned represents a copy coming back to the shelf.
// Fine is the amount frozen at the return date; it is carried for reporting
// to the caller and is never persisted as an amount.
type BookReturned struct {
	LoanID     LoanIDString
	ReturnedOn DateUTC
	Condition  ReturnConditionString
	Notes      string
	Fine       Cents
	OccurredAt time.Time
}

// BuildBookReturned creates a new BookReturned change.
func BuildBookReturned(
	loanID LoanIDString,
	returnedOn time.Time,
	condition ReturnConditionString,
	notes string,
	fine Cents,
	occurredAt time.Time,
) BookReturned {
	return BookReturned{
		LoanID:     loanID,
		ReturnedOn: ToDate(returnedOn),
		Condition:  condition,
		Notes:      notes,
		Fine:       fine,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c BookReturned) ChangeType() string {
	return BookReturnedChangeType
}

// HasOccurredAt returns when this change occurred.
func (c BookReturned) HasOccurredAt() time.Time {
	return c.OccurredAt
}
