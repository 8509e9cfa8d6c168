package core

import "time"

// FineSettledChangeType is the change type identifier.
const FineSettledChangeType = "FineSettled"

// FineSettled represents the fine on a returned loan being paid.
// Amount is the fine as recomputed at settlement time; what gets persisted
// is only the payment fact.
type FineSettled struct {
	LoanID     LoanIDString
	Amount     Cents
	OccurredAt time.Time
}

// BuildFineSettled creates a new FineSettled change.
func BuildFineSettled(loanID LoanIDString, amount Cents, occurredAt time.Time) FineSettled {
	return FineSettled{
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c FineSettled) ChangeType() string {
	return FineSettledChangeType
}

// HasOccurredAt returns when this change occurred.
func (c FineSettled) HasOccurredAt() time.Time {
	return c.OccurredAt
}
