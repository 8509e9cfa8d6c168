package deactivatemember

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// State carries the member the decision needs.
// The command handler loads it from the library store; tests construct it
// directly. A member that was never registered does not reach the decision,
// the load fails instead.
type State struct {
	Member core.Member
}

// Decide makes the business decision for deactivating a member account.
//
// Decision logic:
//
//	GIVEN: The member with their open loan count
//	WHEN:  DeactivateMember command is received
//	THEN:  MemberDeactivated change is returned
//	REJECTED: When the member still has open loans
//	IDEMPOTENCY: If the account is already inactive, no change is returned
func Decide(current State, command Command) core.DecisionResult {
	if !current.Member.Active {
		return core.IdempotentDecision()
	}

	if current.Member.ActiveLoanCount > 0 {
		return core.RejectedDecision(core.RejectionMemberHasOpenLoans)
	}

	return core.SuccessDecision(core.BuildMemberDeactivated(current.Member.ID, command.OccurredAt))
}
