package librarystats_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/addbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/checkoutbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/deactivatemember"
	"github.com/BhuvanMohan2005/library-management-go/features/command/registermember"
	"github.com/BhuvanMohan2005/library-management-go/features/command/returnbook"
	"github.com/BhuvanMohan2005/library-management-go/features/query/librarystats"
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper"                 //nolint:revive
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper/postgreswrapper" //nolint:revive
)

type testHandlers struct {
	addBook          addbook.CommandHandler
	registerMember   registermember.CommandHandler
	deactivateMember deactivatemember.CommandHandler
	checkOutBook     checkoutbook.CommandHandler
	returnBook       returnbook.CommandHandler
	query            librarystats.QueryHandler
}

type testFixture struct {
	bookA, bookB           uuid.UUID
	memberA, memberB       uuid.UUID
	loanOpen, loanReturned uuid.UUID
}

//nolint:funlen
func Test_QueryHandler_Handle_ReturnsStoredAndDerivedNumbers(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handlers := createAllHandlers(t, wrapper)
	fixture := createTestFixture(t)
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	addTestBooks(ctx, t, handlers, fixture, fakeClock)
	registerTestMembers(ctx, t, handlers, fixture, fakeClock)

	// Member B closes their account before borrowing anything
	deactivateCmd := deactivatemember.BuildCommand(fixture.memberB, fakeClock.Add(10*time.Minute))
	_, err := handlers.deactivateMember.Handle(ctx, deactivateCmd)
	assert.NoError(t, err, "Should deactivate member B")

	// One loan stays out past its due date
	checkOutCmdOpen := checkoutbook.BuildCommand(fixture.loanOpen, fixture.bookA, fixture.memberA, fakeClock.Add(time.Hour))
	_, err = handlers.checkOutBook.Handle(ctx, checkOutCmdOpen)
	assert.NoError(t, err, "Should check out the open loan")

	// One loan comes back within its period
	checkOutCmdReturned := checkoutbook.BuildCommand(fixture.loanReturned, fixture.bookB, fixture.memberA, fakeClock.AddDate(0, 0, 1))
	_, err = handlers.checkOutBook.Handle(ctx, checkOutCmdReturned)
	assert.NoError(t, err, "Should check out the loan that gets returned")

	returnCmd := returnbook.BuildCommand(fixture.loanReturned, core.ConditionGood, "", fakeClock.AddDate(0, 0, 7))
	_, err = handlers.returnBook.Handle(ctx, returnCmd)
	assert.NoError(t, err, "Should return the loan")

	// act
	query := librarystats.BuildQuery(fakeClock.AddDate(0, 0, 20))
	result, err := handlers.query.Handle(ctx, query)

	// assert
	assert.NoError(t, err, "Query should succeed")
	assert.Equal(t, core.ToDate(fakeClock.AddDate(0, 0, 20)), result.AsOf, "Statistics should carry the query date")
	assert.Equal(t, 2, result.TotalBooks, "Catalog should have 2 entries")
	assert.Equal(t, 3, result.TotalCopies, "Catalog should have 3 copies in total")
	assert.Equal(t, 2, result.AvailableCopies, "Two copies should be on the shelf")
	assert.Equal(t, 1, result.CheckedOutCopies, "One copy should be checked out")
	assert.Equal(t, 2, result.TotalMembers, "Two members should be registered")
	assert.Equal(t, 1, result.ActiveMembers, "Only member A should still be active")
	assert.Equal(t, 1, result.OpenLoans, "One loan should still be open")
	assert.Equal(t, 1, result.OverdueLoans, "The open loan should be past its due date")
	assert.Equal(t, core.Cents(300), result.AccruingFines, "Six days late should have accrued six days of fines")
}

func Test_QueryHandler_Handle_ReturnsZeroes_WhenLibraryIsEmpty(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handlers := createAllHandlers(t, wrapper)
	fakeClock := time.Unix(0, 0).UTC()

	// act
	query := librarystats.BuildQuery(fakeClock)
	result, err := handlers.query.Handle(ctx, query)

	// assert
	assert.NoError(t, err, "Query should succeed")
	assert.Equal(t, core.ToDate(fakeClock), result.AsOf, "Statistics should carry the query date")
	assert.Equal(t, 0, result.TotalBooks, "Catalog should be empty")
	assert.Equal(t, 0, result.TotalCopies, "No copies should exist")
	assert.Equal(t, 0, result.AvailableCopies, "No copies should be on the shelf")
	assert.Equal(t, 0, result.CheckedOutCopies, "No copies should be checked out")
	assert.Equal(t, 0, result.TotalMembers, "No members should be registered")
	assert.Equal(t, 0, result.ActiveMembers, "No members should be active")
	assert.Equal(t, 0, result.OpenLoans, "No loans should be open")
	assert.Equal(t, 0, result.OverdueLoans, "No loans should be overdue")
	assert.Equal(t, core.Cents(0), result.AccruingFines, "No fines should be accruing")
}

// Test setup helpers.
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

func createAllHandlers(t *testing.T, wrapper Wrapper) testHandlers {
	t.Helper()

	store := wrapper.GetLibraryStore()
	policy := GivenDefaultLoanPolicy(t)

	return testHandlers{
		addBook:          addbook.NewCommandHandler(store),
		registerMember:   registermember.NewCommandHandler(store, policy),
		deactivateMember: deactivatemember.NewCommandHandler(store),
		checkOutBook:     checkoutbook.NewCommandHandler(store, policy),
		returnBook:       returnbook.NewCommandHandler(store, policy),
		query:            librarystats.NewQueryHandler(store, policy),
	}
}

func createTestFixture(t *testing.T) testFixture {
	t.Helper()

	return testFixture{
		bookA:        GivenUniqueID(t),
		bookB:        GivenUniqueID(t),
		memberA:      GivenUniqueID(t),
		memberB:      GivenUniqueID(t),
		loanOpen:     GivenUniqueID(t),
		loanReturned: GivenUniqueID(t),
	}
}

func addTestBooks(ctx context.Context, t *testing.T, handlers testHandlers, fixture testFixture, fakeClock time.Time) {
	t.Helper()

	addBookCmdA, err := addbook.BuildCommand(fixture.bookA, "Learning Domain-Driven Design", "Vlad Khononov",
		GivenUniqueISBN(t), "Software Engineering", "O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.", 2, fakeClock)
	assert.NoError(t, err, "error in arranging test data")

	_, err = handlers.addBook.Handle(ctx, addBookCmdA)
	assert.NoError(t, err, "Should add book A to the catalog")

	addBookCmdB, err := addbook.BuildCommand(fixture.bookB, "Clean Code", "Robert C. Martin",
		GivenUniqueISBN(t), "Software Engineering", "Prentice Hall",
		time.Date(2008, time.August, 1, 0, 0, 0, 0, time.UTC),
		"A handbook of agile software craftsmanship.", 1, fakeClock.Add(time.Minute))
	assert.NoError(t, err, "error in arranging test data")

	_, err = handlers.addBook.Handle(ctx, addBookCmdB)
	assert.NoError(t, err, "Should add book B to the catalog")
}

func registerTestMembers(ctx context.Context, t *testing.T, handlers testHandlers, fixture testFixture, fakeClock time.Time) {
	t.Helper()

	registerCmdA := registermember.BuildCommand(fixture.memberA, "Priya Sharma",
		"priya.sharma+"+fixture.memberA.String()[:8]+"@example.com", "+91 98765 43210",
		core.MembershipRegular, fakeClock, 3, fakeClock.Add(3*time.Minute))
	_, err := handlers.registerMember.Handle(ctx, registerCmdA)
	assert.NoError(t, err, "Should register member A")

	registerCmdB := registermember.BuildCommand(fixture.memberB, "Arjun Mehta",
		"arjun.mehta+"+fixture.memberB.String()[:8]+"@example.com", "+91 98765 43211",
		core.MembershipRegular, fakeClock, 3, fakeClock.Add(4*time.Minute))
	_, err = handlers.registerMember.Handle(ctx, registerCmdB)
	assert.NoError(t, err, "Should register member B")
}
