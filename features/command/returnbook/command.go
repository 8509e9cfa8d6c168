package returnbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/BhuvanMohan2005/library-management-go/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a checked-out copy.
// It encapsulates all the necessary information required to execute the return book use case.
type Command struct {
	LoanID     uuid.UUID
	Condition  core.ReturnConditionString
	Notes      string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// An empty condition defaults to GOOD.
func BuildCommand(loanID uuid.UUID, condition core.ReturnConditionString, notes string, occurredAt time.Time) Command {
	if condition == "" {
		condition = core.ConditionGood
	}

	return Command{
		LoanID:     loanID,
		Condition:  condition,
		Notes:      notes,
		OccurredAt: occurredAt,
	}
}
