package registermember

import (
	"time"

	"github.com/google/uuid"

	"github.com/BhuvanMohan2005/library-management-go/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a new borrower.
// BorrowingLimit may be zero, in which case the policy default applies when
// the decision builds the member.
type Command struct {
	MemberID       uuid.UUID
	Name           string
	Email          string
	Phone          string
	MembershipType core.MembershipTypeString
	JoinedOn       time.Time
	BorrowingLimit int
	OccurredAt     time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	memberID uuid.UUID,
	name string,
	email string,
	phone string,
	membershipType core.MembershipTypeString,
	joinedOn time.Time,
	borrowingLimit int,
	occurredAt time.Time,
) Command {
	return Command{
		MemberID:       memberID,
		Name:           name,
		Email:          email,
		Phone:          phone,
		MembershipType: membershipType,
		JoinedOn:       joinedOn,
		BorrowingLimit: borrowingLimit,
		OccurredAt:     occurredAt,
	}
}
