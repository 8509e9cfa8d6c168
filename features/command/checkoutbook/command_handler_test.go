package checkoutbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/addbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/checkoutbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/deactivatemember"
	"github.com/BhuvanMohan2005/library-management-go/features/command/registermember"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper"                 //nolint:revive
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper/postgreswrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 2, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 3, fakeClock.Add(2*time.Hour))

	// act
	checkOutCmd := checkoutbook.BuildCommand(loanID, bookID, memberID, fakeClock.Add(3*time.Hour))
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.NoError(t, err, "Should successfully check out book to member")
	assertSuccessResult(t, result)
	verifyLoanPersisted(ctx, t, wrapper, loanID, bookID, memberID, fakeClock.Add(3*time.Hour))
	assert.Equal(t, 1, GetAvailableCopiesFromDB(t, wrapper, bookID), "One of two copies should be out")
	assert.Equal(t, 1, CountOpenLoansFromDB(t, wrapper, memberID), "Member should have one open loan")
}

func Test_CommandHandler_Handle_Idempotent_LoanAlreadyRecorded(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	loanID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 2, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 3, fakeClock.Add(2*time.Hour))

	checkOutCmd := checkoutbook.BuildCommand(loanID, bookID, memberID, fakeClock.Add(3*time.Hour))
	_, err := checkOutHandler.Handle(ctx, checkOutCmd)
	assert.NoError(t, err, "Should successfully check out book first time")

	// act
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.NoError(t, err, "Should succeed (idempotent) when loan is already recorded")
	assertIdempotentResult(t, result)
	assert.Equal(t, 1, GetAvailableCopiesFromDB(t, wrapper, bookID), "Copy count should not change on replay")
	assert.Equal(t, 1, CountOpenLoansFromDB(t, wrapper, memberID), "Open loan count should not change on replay")
}

func Test_CommandHandler_Handle_Rejected_NoCopiesAvailable(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)
	otherMemberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 1, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 3, fakeClock.Add(2*time.Hour))
	givenMemberRegistered(ctx, t, wrapper, otherMemberID, 3, fakeClock.Add(2*time.Hour+30*time.Minute))

	firstCheckOutCmd := checkoutbook.BuildCommand(GivenUniqueID(t), bookID, otherMemberID, fakeClock.Add(3*time.Hour))
	_, err := checkOutHandler.Handle(ctx, firstCheckOutCmd)
	assert.NoError(t, err, "Should successfully check out the only copy")

	// act
	loanID := GivenUniqueID(t)
	checkOutCmd := checkoutbook.BuildCommand(loanID, bookID, memberID, fakeClock.Add(4*time.Hour))
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.NoError(t, err, "Rejection should not surface as an error")
	assertRejectedResult(t, result, core.RejectionNoCopiesAvailable)
	verifyLoanNotPersisted(ctx, t, wrapper, loanID)
	assert.Equal(t, 0, CountOpenLoansFromDB(t, wrapper, memberID), "Rejected member should have no open loans")
}

func Test_CommandHandler_Handle_Rejected_LimitExceeded(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	otherBookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 2, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 1, fakeClock.Add(2*time.Hour))

	addOtherBookCmd, err := addbook.BuildCommand(
		otherBookID,
		"Domain-Driven Design",
		"Eric Evans",
		"978-0-321-12521-7",
		"Software Engineering",
		"Addison-Wesley",
		time.Date(2003, time.August, 20, 0, 0, 0, 0, time.UTC),
		"Tackling complexity in the heart of software.",
		1,
		fakeClock.Add(time.Hour+30*time.Minute),
	)
	assert.NoError(t, err, "error in arranging test data")
	_, err = createAddBookHandler(t, wrapper).Handle(ctx, addOtherBookCmd)
	assert.NoError(t, err, "Should successfully add second book to catalog")

	firstCheckOutCmd := checkoutbook.BuildCommand(GivenUniqueID(t), bookID, memberID, fakeClock.Add(3*time.Hour))
	_, err = checkOutHandler.Handle(ctx, firstCheckOutCmd)
	assert.NoError(t, err, "Should successfully check out first book")

	// act
	loanID := GivenUniqueID(t)
	checkOutCmd := checkoutbook.BuildCommand(loanID, otherBookID, memberID, fakeClock.Add(4*time.Hour))
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.NoError(t, err, "Rejection should not surface as an error")
	assertRejectedResult(t, result, core.RejectionLimitExceeded)
	verifyLoanNotPersisted(ctx, t, wrapper, loanID)
	assert.Equal(t, 1, CountOpenLoansFromDB(t, wrapper, memberID), "Member should still have exactly one open loan")
}

func Test_CommandHandler_Handle_Rejected_MemberNotActive(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 2, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 3, fakeClock.Add(2*time.Hour))

	deactivateCmd := deactivatemember.BuildCommand(memberID, fakeClock.Add(3*time.Hour))
	_, err := createDeactivateMemberHandler(t, wrapper).Handle(ctx, deactivateCmd)
	assert.NoError(t, err, "Should successfully deactivate member")

	// act
	loanID := GivenUniqueID(t)
	checkOutCmd := checkoutbook.BuildCommand(loanID, bookID, memberID, fakeClock.Add(4*time.Hour))
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.NoError(t, err, "Rejection should not surface as an error")
	assertRejectedResult(t, result, core.RejectionMemberNotActive)
	verifyLoanNotPersisted(ctx, t, wrapper, loanID)
	assert.Equal(t, 2, GetAvailableCopiesFromDB(t, wrapper, bookID), "No copy should leave the shelf")
}

func Test_CommandHandler_Handle_Error_MemberNotFound(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	unknownMemberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 2, fakeClock.Add(time.Hour))

	// act
	loanID := GivenUniqueID(t)
	checkOutCmd := checkoutbook.BuildCommand(loanID, bookID, unknownMemberID, fakeClock.Add(2*time.Hour))
	result, err := checkOutHandler.Handle(ctx, checkOutCmd)

	// assert
	assert.Error(t, err, "Should fail for an unknown member")
	assert.ErrorIs(t, err, librarystore.ErrMemberNotFound, "Error should identify the missing member")
	assert.False(t, result.Idempotent, "Operation should not be idempotent")
	assert.False(t, result.Rejected, "Operation should not be rejected")
	verifyLoanNotPersisted(ctx, t, wrapper, loanID)
}

func Test_CommandHandler_Handle_ConcurrentCheckouts_OnlyOneClaimsLastCopy(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	checkOutHandler := createCheckOutBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)
	otherMemberID := GivenUniqueID(t)

	// arrange
	givenBookAdded(ctx, t, wrapper, bookID, 1, fakeClock.Add(time.Hour))
	givenMemberRegistered(ctx, t, wrapper, memberID, 3, fakeClock.Add(2*time.Hour))
	givenMemberRegistered(ctx, t, wrapper, otherMemberID, 3, fakeClock.Add(2*time.Hour+30*time.Minute))

	commands := []checkoutbook.Command{
		checkoutbook.BuildCommand(GivenUniqueID(t), bookID, memberID, fakeClock.Add(3*time.Hour)),
		checkoutbook.BuildCommand(GivenUniqueID(t), bookID, otherMemberID, fakeClock.Add(3*time.Hour)),
	}

	results := make([]shell.HandlerResult, len(commands))
	errs := make([]error, len(commands))

	// act
	var wg sync.WaitGroup
	for i, cmd := range commands {
		wg.Add(1)
		go func(idx int, command checkoutbook.Command) {
			defer wg.Done()
			results[idx], errs[idx] = checkOutHandler.Handle(ctx, command)
		}(i, cmd)
	}
	wg.Wait()

	// assert
	successCount := 0
	rejectedCount := 0
	for i := range commands {
		assert.NoError(t, errs[i], "Neither contender should see a hard error")

		switch {
		case results[i].Rejected:
			rejectedCount++
			assert.Equal(t, string(core.RejectionNoCopiesAvailable), results[i].RejectionReason,
				"Loser should be rejected for the missing copy")
		default:
			successCount++
		}
	}

	assert.Equal(t, 1, successCount, "Exactly one contender should claim the last copy")
	assert.Equal(t, 1, rejectedCount, "Exactly one contender should be turned away")
	assert.Equal(t, 0, GetAvailableCopiesFromDB(t, wrapper, bookID), "The shelf should be empty")
	assert.Equal(t, 1, CountOpenLoansFromDB(t, wrapper, memberID)+CountOpenLoansFromDB(t, wrapper, otherMemberID),
		"Only one loan should be recorded")
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

func createCheckOutBookHandler(t *testing.T, wrapper Wrapper) checkoutbook.CommandHandler {
	t.Helper()

	handler := checkoutbook.NewCommandHandler(wrapper.GetLibraryStore(), GivenDefaultLoanPolicy(t))

	return handler
}

func createAddBookHandler(t *testing.T, wrapper Wrapper) addbook.CommandHandler {
	t.Helper()

	handler := addbook.NewCommandHandler(wrapper.GetLibraryStore())

	return handler
}

func createRegisterMemberHandler(t *testing.T, wrapper Wrapper) registermember.CommandHandler {
	t.Helper()

	handler := registermember.NewCommandHandler(wrapper.GetLibraryStore(), GivenDefaultLoanPolicy(t))

	return handler
}

func createDeactivateMemberHandler(t *testing.T, wrapper Wrapper) deactivatemember.CommandHandler {
	t.Helper()

	handler := deactivatemember.NewCommandHandler(wrapper.GetLibraryStore())

	return handler
}

func givenBookAdded(
	ctx context.Context,
	t *testing.T,
	wrapper Wrapper,
	bookID uuid.UUID,
	totalCopies int,
	occurredAt time.Time,
) {
	t.Helper()

	addBookCmd, err := addbook.BuildCommand(
		bookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		GivenUniqueISBN(t),
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		totalCopies,
		occurredAt,
	)
	assert.NoError(t, err, "error in arranging test data")

	_, err = createAddBookHandler(t, wrapper).Handle(ctx, addBookCmd)
	assert.NoError(t, err, "error in arranging test data")
}

func givenMemberRegistered(
	ctx context.Context,
	t *testing.T,
	wrapper Wrapper,
	memberID uuid.UUID,
	borrowingLimit int,
	occurredAt time.Time,
) {
	t.Helper()

	registerMemberCmd := registermember.BuildCommand(
		memberID,
		"John Doe",
		"john.doe+"+memberID.String()[:8]+"@example.com",
		"+1 555 0100",
		core.MembershipRegular,
		occurredAt,
		borrowingLimit,
		occurredAt,
	)

	_, err := createRegisterMemberHandler(t, wrapper).Handle(ctx, registerMemberCmd)
	assert.NoError(t, err, "error in arranging test data")
}

func verifyLoanPersisted(
	ctx context.Context,
	t *testing.T,
	wrapper Wrapper,
	loanID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	checkedOutAt time.Time,
) {
	t.Helper()

	store := wrapper.GetLibraryStore()

	loan, err := store.GetLoanByID(ctx, loanID.String())
	assert.NoError(t, err, "Should load the persisted loan")
	assert.Equal(t, bookID.String(), loan.BookID, "Loan should reference the book")
	assert.Equal(t, memberID.String(), loan.MemberID, "Loan should reference the member")
	assert.Equal(t, core.ToDate(checkedOutAt), loan.CheckedOutOn, "Checkout date should match the command")
	assert.Equal(t, core.AddDays(core.ToDate(checkedOutAt), 14), loan.DueOn, "Due date should be one loan period out")
	assert.False(t, loan.IsReturned(), "Fresh loan should be open")
}

func verifyLoanNotPersisted(ctx context.Context, t *testing.T, wrapper Wrapper, loanID uuid.UUID) {
	t.Helper()

	_, err := wrapper.GetLibraryStore().GetLoanByID(ctx, loanID.String())
	assert.ErrorIs(t, err, librarystore.ErrLoanNotFound, "No loan row should exist")
}

func assertIdempotentResult(t *testing.T, result shell.HandlerResult) {
	t.Helper()
	assert.True(t, result.Idempotent, "Operation should be idempotent")
}

func assertSuccessResult(t *testing.T, result shell.HandlerResult) {
	t.Helper()
	assert.False(t, result.Idempotent, "Operation should not be idempotent")
	assert.False(t, result.Rejected, "Operation should not be rejected")
}

func assertRejectedResult(t *testing.T, result shell.HandlerResult, reason core.RejectionReason) {
	t.Helper()
	assert.True(t, result.Rejected, "Operation should be rejected")
	assert.Equal(t, string(reason), result.RejectionReason, "Rejection reason should match")
}
