package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/returnbook"
)

func Test_Decide_Success_OnTimeReturnOwesNothing(t *testing.T) {
	// arrange
	loanID := uuid.New()
	checkedOutOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2025, time.March, 10, 16, 30, 0, 0, time.UTC)
	policy := givenDefaultPolicy(t)

	current := returnbook.State{
		Loan: givenOpenLoan(t, loanID, checkedOutOn, 14),
		Book: givenBookWithLentCopy(t),
	}

	command := returnbook.BuildCommand(loanID, core.ConditionGood, "", returnedAt)

	// act
	result := returnbook.Decide(current, command, policy)

	// assert
	returned := assertSuccessDecision(t, result)
	assert.Equal(t, loanID.String(), returned.LoanID, "Change should reference the loan")
	assert.Equal(t, core.ToDate(returnedAt), returned.ReturnedOn, "Return date should be normalized to a UTC date")
	assert.Equal(t, core.ConditionGood, returned.Condition, "Condition should be carried")
	assert.Equal(t, core.Cents(0), returned.Fine, "An on-time return should owe nothing")
}

func Test_Decide_Success_OverdueReturnFreezesFine(t *testing.T) {
	// arrange
	loanID := uuid.New()
	checkedOutOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2025, time.March, 21, 9, 0, 0, 0, time.UTC) // due March 15, six days late
	policy := givenDefaultPolicy(t)

	current := returnbook.State{
		Loan: givenOpenLoan(t, loanID, checkedOutOn, 14),
		Book: givenBookWithLentCopy(t),
	}

	command := returnbook.BuildCommand(loanID, core.ConditionMinorDamage, "scuffed cover", returnedAt)

	// act
	result := returnbook.Decide(current, command, policy)

	// assert
	returned := assertSuccessDecision(t, result)
	assert.Equal(t, core.Cents(300), returned.Fine, "Six days late at 50 cents per day should owe 300 cents")
	assert.Equal(t, core.ConditionMinorDamage, returned.Condition, "Condition should be carried")
	assert.Equal(t, "scuffed cover", returned.Notes, "Notes should be carried")
}

func Test_Decide_Success_ReturnOnDueDateOwesNothing(t *testing.T) {
	// arrange
	loanID := uuid.New()
	checkedOutOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC) // the due date itself
	policy := givenDefaultPolicy(t)

	current := returnbook.State{
		Loan: givenOpenLoan(t, loanID, checkedOutOn, 14),
		Book: givenBookWithLentCopy(t),
	}

	command := returnbook.BuildCommand(loanID, core.ConditionGood, "", returnedAt)

	// act
	result := returnbook.Decide(current, command, policy)

	// assert
	returned := assertSuccessDecision(t, result)
	assert.Equal(t, core.Cents(0), returned.Fine, "A loan is not overdue on its due date")
}

func Test_Decide_EmptyConditionDefaultsToGood(t *testing.T) {
	// arrange
	loanID := uuid.New()

	// act
	command := returnbook.BuildCommand(loanID, "", "", time.Now())

	// assert
	assert.Equal(t, core.ConditionGood, command.Condition, "An empty condition should default to GOOD")
}

func Test_Decide_Error_WhenLoanAlreadyReturned(t *testing.T) {
	// arrange
	loanID := uuid.New()
	checkedOutOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := givenDefaultPolicy(t)

	loan := givenOpenLoan(t, loanID, checkedOutOn, 14)
	loan.ReturnedOn = core.AddDays(core.ToDate(checkedOutOn), 10)
	loan.ReturnCondition = core.ConditionGood

	current := returnbook.State{
		Loan: loan,
		Book: givenBookWithLentCopy(t),
	}

	command := returnbook.BuildCommand(loanID, core.ConditionGood, "", time.Now())

	// act
	result := returnbook.Decide(current, command, policy)

	// assert
	assertErrorDecision(t, result, core.ErrInvalidLoanState)
}

func Test_Decide_Error_WhenEveryCopyAlreadyOnShelf(t *testing.T) {
	// arrange
	loanID := uuid.New()
	checkedOutOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	policy := givenDefaultPolicy(t)

	book := givenBookWithLentCopy(t)
	book.AvailableCopies = book.TotalCopies

	current := returnbook.State{
		Loan: givenOpenLoan(t, loanID, checkedOutOn, 14),
		Book: book,
	}

	command := returnbook.BuildCommand(loanID, core.ConditionGood, "", time.Now())

	// act
	result := returnbook.Decide(current, command, policy)

	// assert
	assertErrorDecision(t, result, core.ErrInventoryViolation)
}

// Test helper functions with t.Helper() for better error reporting

func givenDefaultPolicy(t *testing.T) core.LoanPolicy {
	t.Helper()

	policy, err := core.BuildLoanPolicy()
	require.NoError(t, err, "Should build the default policy")

	return policy
}

func givenOpenLoan(t *testing.T, loanID uuid.UUID, checkedOutOn time.Time, loanPeriodDays int) core.Loan {
	t.Helper()

	return core.Loan{
		ID:           loanID.String(),
		BookID:       uuid.New().String(),
		MemberID:     uuid.New().String(),
		CheckedOutOn: core.ToDate(checkedOutOn),
		DueOn:        core.AddDays(core.ToDate(checkedOutOn), loanPeriodDays),
	}
}

func givenBookWithLentCopy(t *testing.T) core.Book {
	t.Helper()

	book, err := core.BuildBook(
		uuid.New(),
		"Test Book Title",
		"Test Author",
		"978-1-098-10013-1",
		"Software",
		"Test Publisher",
		time.Time{},
		"",
		2,
	)
	require.NoError(t, err, "Should build the book fixture")

	book.AvailableCopies = 1 // one copy is out with the loan under test

	return book
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult) core.BookReturned {
	t.Helper()

	require.True(t, result.HasChangeToApply(), "Should have a change to apply")
	assert.False(t, result.IsRejected(), "Should not be rejected")
	assert.NoError(t, result.HasError(), "Should not carry an error")

	returned, ok := result.Change.(core.BookReturned)
	require.True(t, ok, "Change should be a BookReturned")

	return returned
}

func assertErrorDecision(t *testing.T, result core.DecisionResult, expectedSentinel error) {
	t.Helper()

	assert.False(t, result.HasChangeToApply(), "Should not have a change to apply")
	assert.False(t, result.IsRejected(), "Should not be rejected")

	err := result.HasError()
	require.Error(t, err, "Should carry an error")
	assert.ErrorIs(t, err, expectedSentinel, "Should match the expected sentinel")
}
