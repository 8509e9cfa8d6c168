package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/returnbook"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper"                 //nolint:revive
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper/postgreswrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	store := wrapper.GetLibraryStore()
	returnBookHandler := createReturnBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(t, ctx, store, bookID, 1)
	GivenMemberRegistered(t, ctx, store, memberID, 3)
	GivenBookCheckedOut(t, ctx, store, loanID, bookID, memberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	// act
	returnCmd := returnbook.BuildCommand(loanID, core.ConditionGood, "", fakeClock.AddDate(0, 0, 10))
	result, err := returnBookHandler.Handle(ctx, returnCmd)

	// assert
	assert.NoError(t, err, "Should successfully return book")
	assertSuccessResult(t, result)

	loan, err := store.GetLoanByID(ctx, loanID.String())
	assert.NoError(t, err, "Should load the closed loan")
	assert.True(t, loan.IsReturned(), "Loan should be closed")
	assert.Equal(t, core.ToDate(fakeClock.AddDate(0, 0, 10)), loan.ReturnedOn, "Return date should match the command")
	assert.Equal(t, core.ConditionGood, loan.ReturnCondition, "Condition should be recorded")
	assert.Equal(t, core.Cents(0), loan.ComputeFine(fakeClock.AddDate(0, 0, 30), core.Cents(50)),
		"On-time return should owe nothing")
	assert.Equal(t, 1, GetAvailableCopiesFromDB(t, wrapper, bookID), "Copy should be back on the shelf")
	assert.Equal(t, 0, CountOpenLoansFromDB(t, wrapper, memberID), "Member should have no open loans")
}

func Test_CommandHandler_Handle_Success_LateReturnFreezesFine(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	store := wrapper.GetLibraryStore()
	returnBookHandler := createReturnBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(t, ctx, store, bookID, 1)
	GivenMemberRegistered(t, ctx, store, memberID, 3)
	GivenBookCheckedOut(t, ctx, store, loanID, bookID, memberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	// act - six days past due at fifty cents per day
	returnCmd := returnbook.BuildCommand(loanID, core.ConditionGood, "", fakeClock.AddDate(0, 0, 20))
	result, err := returnBookHandler.Handle(ctx, returnCmd)

	// assert
	assert.NoError(t, err, "Should successfully return overdue book")
	assertSuccessResult(t, result)

	loan, err := store.GetLoanByID(ctx, loanID.String())
	assert.NoError(t, err, "Should load the closed loan")
	assert.Equal(t, core.Cents(300), loan.ComputeFine(fakeClock.AddDate(0, 0, 20), core.Cents(50)),
		"Fine should be six days at the daily rate")
	assert.Equal(t, core.Cents(300), loan.ComputeFine(fakeClock.AddDate(0, 0, 60), core.Cents(50)),
		"Fine should stay frozen at the return date")
	assert.False(t, loan.FinePaid, "Frozen fine should still be outstanding")
}

func Test_CommandHandler_Handle_Success_DamagedCopyKeepsNotes(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	store := wrapper.GetLibraryStore()
	returnBookHandler := createReturnBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(t, ctx, store, bookID, 1)
	GivenMemberRegistered(t, ctx, store, memberID, 3)
	GivenBookCheckedOut(t, ctx, store, loanID, bookID, memberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	// act
	returnCmd := returnbook.BuildCommand(
		loanID,
		core.ConditionMinorDamage,
		"water stains on the back cover",
		fakeClock.AddDate(0, 0, 7),
	)
	result, err := returnBookHandler.Handle(ctx, returnCmd)

	// assert
	assert.NoError(t, err, "Should successfully return damaged book")
	assertSuccessResult(t, result)

	loan, err := store.GetLoanByID(ctx, loanID.String())
	assert.NoError(t, err, "Should load the closed loan")
	assert.Equal(t, core.ConditionMinorDamage, loan.ReturnCondition, "Condition should be recorded")
	assert.Equal(t, "water stains on the back cover", loan.Notes, "Notes should be recorded")
}

func Test_CommandHandler_Handle_Error_LoanNotFound(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	returnBookHandler := createReturnBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	unknownLoanID := GivenUniqueID(t)

	// act
	returnCmd := returnbook.BuildCommand(unknownLoanID, core.ConditionGood, "", fakeClock)
	_, err := returnBookHandler.Handle(ctx, returnCmd)

	// assert
	assert.Error(t, err, "Should fail for an unknown loan")
	assert.ErrorIs(t, err, librarystore.ErrLoanNotFound, "Error should identify the missing loan")
}

func Test_CommandHandler_Handle_Error_LoanAlreadyReturned(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	store := wrapper.GetLibraryStore()
	returnBookHandler := createReturnBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	GivenBookInCatalog(t, ctx, store, bookID, 1)
	GivenMemberRegistered(t, ctx, store, memberID, 3)
	GivenBookCheckedOut(t, ctx, store, loanID, bookID, memberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	returnCmd := returnbook.BuildCommand(loanID, core.ConditionGood, "", fakeClock.AddDate(0, 0, 10))
	_, err := returnBookHandler.Handle(ctx, returnCmd)
	assert.NoError(t, err, "Should successfully return book first time")

	// act
	secondReturnCmd := returnbook.BuildCommand(loanID, core.ConditionGood, "", fakeClock.AddDate(0, 0, 11))
	_, err = returnBookHandler.Handle(ctx, secondReturnCmd)

	// assert
	assert.Error(t, err, "Should fail to return an already returned loan")
	assert.ErrorIs(t, err, core.ErrInvalidLoanState, "Error should identify the loan state")

	loan, err := store.GetLoanByID(ctx, loanID.String())
	assert.NoError(t, err, "Should load the closed loan")
	assert.Equal(t, core.ToDate(fakeClock.AddDate(0, 0, 10)), loan.ReturnedOn,
		"Return date from the first return should stand")
	assert.Equal(t, 1, GetAvailableCopiesFromDB(t, wrapper, bookID),
		"Copy count should not change on the failed replay")
}

// Test helper functions

func setupTestEnvironment(t *testing.T) (context.Context, Wrapper, func()) {
	t.Helper()

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	wrapper := CreateWrapperWithTestConfig(t)

	cleanup := func() {
		cancel()
		wrapper.Close()
	}

	CleanUp(t, wrapper)

	return ctxWithTimeout, wrapper, cleanup
}

func createReturnBookHandler(t *testing.T, wrapper Wrapper) returnbook.CommandHandler {
	t.Helper()

	handler := returnbook.NewCommandHandler(wrapper.GetLibraryStore(), GivenDefaultLoanPolicy(t))

	return handler
}

func assertSuccessResult(t *testing.T, result shell.HandlerResult) {
	t.Helper()
	assert.False(t, result.Idempotent, "Operation should not be idempotent")
	assert.False(t, result.Rejected, "Operation should not be rejected")
}
