package core

import "time"

// MemberRegisteredChangeType is the change type identifier.
const MemberRegisteredChangeType = "MemberRegistered"

// MemberRegistered represents a new borrower joining the library.
type MemberRegistered struct {
	Member     Member
	OccurredAt time.Time
}

// BuildMemberRegistered creates a new MemberRegistered change.
func BuildMemberRegistered(member Member, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		Member:     member,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c MemberRegistered) ChangeType() string {
	return MemberRegisteredChangeType
}

// HasOccurredAt returns when this change occurred.
func (c MemberRegistered) HasOccurredAt() time.Time {
	return c.OccurredAt
}
