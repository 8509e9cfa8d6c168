package deactivatemember

import (
	"time"

	"github.com/google/uuid"
)

const (
	commandType = "DeactivateMember"
)

// Command represents the intent to deactivate a member account.
type Command struct {
	MemberID   uuid.UUID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		OccurredAt: occurredAt,
	}
}
