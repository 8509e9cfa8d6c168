package deactivatemember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/deactivatemember"
)

func Test_Decide_Success_DeactivatesMemberWithoutOpenLoans(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Date(2025, time.June, 12, 16, 45, 0, 0, time.UTC)
	command := deactivatemember.BuildCommand(memberID, now)

	current := deactivatemember.State{
		Member: givenMember(t, memberID, 0),
	}

	// act
	result := deactivatemember.Decide(current, command)

	// assert
	deactivated := assertSuccessDecision(t, result)
	assert.Equal(t, memberID.String(), deactivated.MemberID, "Change should carry the member's id")
	assert.Equal(t, now, deactivated.OccurredAt, "Change should carry the command's timestamp")
}

func Test_Decide_Idempotent_WhenAccountAlreadyInactive(t *testing.T) {
	// arrange
	memberID := uuid.New()
	command := deactivatemember.BuildCommand(memberID, time.Now())

	member := givenMember(t, memberID, 0)
	member.Active = false

	// act
	result := deactivatemember.Decide(deactivatemember.State{Member: member}, command)

	// assert
	assert.False(t, result.HasChangeToApply(), "Should not have a change to apply")
	assert.False(t, result.IsRejected(), "Should not be rejected")
	assert.NoError(t, result.HasError(), "Should not carry an error")
}

func Test_Decide_Rejected_WhenMemberHasOpenLoans(t *testing.T) {
	// arrange
	memberID := uuid.New()
	command := deactivatemember.BuildCommand(memberID, time.Now())

	current := deactivatemember.State{
		Member: givenMember(t, memberID, 2),
	}

	// act
	result := deactivatemember.Decide(current, command)

	// assert
	assert.True(t, result.IsRejected(), "Should be rejected")
	assert.False(t, result.HasChangeToApply(), "Should not have a change to apply")
	assert.NoError(t, result.HasError(), "Rejections should not carry an error")
	assert.Equal(t, core.RejectionMemberHasOpenLoans, result.Reason, "Should report the open loans")
}

// Test helper functions with t.Helper() for better error reporting

func givenMember(t *testing.T, memberID uuid.UUID, activeLoans int) core.Member {
	t.Helper()

	member, err := core.BuildMember(
		memberID,
		"Asha Rao",
		"asha.rao@example.com",
		"555-0101",
		core.MembershipRegular,
		time.Now().AddDate(-1, 0, 0),
		3,
		3,
	)
	require.NoError(t, err, "Should build the member fixture")

	member.ActiveLoanCount = activeLoans

	return member
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult) core.MemberDeactivated {
	t.Helper()

	require.True(t, result.HasChangeToApply(), "Should have a change to apply")
	assert.False(t, result.IsRejected(), "Should not be rejected")
	assert.NoError(t, result.HasError(), "Should not carry an error")

	deactivated, ok := result.Change.(core.MemberDeactivated)
	require.True(t, ok, "Change should be a MemberDeactivated")

	return deactivated
}
