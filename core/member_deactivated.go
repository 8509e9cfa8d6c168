package core

import "time"

// MemberDeactivatedChangeType is the change type identifier.
const MemberDeactivatedChangeType = "MemberDeactivated"

// MemberDeactivated represents a borrower's account being switched off.
// A member with open loans cannot be deactivated.
type MemberDeactivated struct {
	MemberID   MemberIDString
	OccurredAt time.Time
}

// BuildMemberDeactivated creates a new MemberDeactivated change.
func BuildMemberDeactivated(memberID MemberIDString, occurredAt time.Time) MemberDeactivated {
	return MemberDeactivated{
		MemberID:   memberID,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c MemberDeactivated) ChangeType() string {
	return MemberDeactivatedChangeType
}

// HasOccurredAt returns when this change occurred.
func (c MemberDeactivated) HasOccurredAt() time.Time {
	return c.OccurredAt
}
