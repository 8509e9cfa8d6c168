package registermember

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the registration facts the decision needs.
// The command handler loads it from the library store; tests construct it
// directly.
type State struct {
	MemberAlreadyRegistered bool
	EmailUsedByOtherMember  bool
}

// Decide makes the business decision for registering a borrower.
//
// Decision logic:
//
//	GIVEN: The registration state for the member's id and email
//	WHEN:  RegisterMember command is received
//	THEN:  MemberRegistered change is returned, with the borrowing limit
//	       defaulted from the policy when the command leaves it unset
//	REJECTED: When the email is already registered to a different member
//	IDEMPOTENCY: If a member with the same id is already registered, no change is returned
func Decide(current State, command Command, policy core.LoanPolicy) core.DecisionResult {
	if current.MemberAlreadyRegistered {
		return core.IdempotentDecision()
	}

	if current.EmailUsedByOtherMember {
		return core.RejectedDecision(core.RejectionEmailAlreadyRegistered)
	}

	member, err := core.BuildMember(
		command.MemberID,
		command.Name,
		command.Email,
		command.Phone,
		command.MembershipType,
		command.JoinedOn,
		command.BorrowingLimit,
		policy.BorrowingLimitDefault,
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(core.BuildMemberRegistered(member, command.OccurredAt))
}
