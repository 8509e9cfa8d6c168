package checkoutbook

import (
	"time"

	"github.com/google/uuid"
)

const (
	commandType = "CheckOutBook"
)

// Command represents the intent to check out one copy of a book to a member.
// It encapsulates all the necessary information required to execute the check out book use case.
//
// The LoanID is generated by the caller so that a replayed command can be
// recognized and handled idempotently.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		MemberID:   memberID,
		OccurredAt: occurredAt,
	}
}
