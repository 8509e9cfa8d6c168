package addbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/addbook"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper"                 //nolint:revive
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper/postgreswrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	addBookHandler := createAddBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)

	// act
	addBookCmd, err := addbook.BuildCommand(
		bookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		"978-1-098-10013-1",
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		3,
		fakeClock.Add(time.Hour),
	)
	assert.NoError(t, err, "Should build command from valid book data")

	result, err := addBookHandler.Handle(ctx, addBookCmd)

	// assert
	assert.NoError(t, err, "Should successfully add book to catalog")
	assertSuccessResult(t, result)

	book, err := wrapper.GetLibraryStore().GetBookByID(ctx, bookID.String())
	assert.NoError(t, err, "Should load the persisted book")
	assert.Equal(t, "Learning Domain-Driven Design", book.Title, "Title should be persisted")
	assert.Equal(t, "Vlad Khononov", book.Author, "Author should be persisted")
	assert.Equal(t, "9781098100131", book.ISBN, "ISBN should be persisted normalized")
	assert.Equal(t, 3, book.TotalCopies, "Total copies should be persisted")
	assert.Equal(t, 3, book.AvailableCopies, "Every copy of a fresh title should be on the shelf")
}

func Test_CommandHandler_Handle_Idempotent_BookAlreadyInCatalog(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	addBookHandler := createAddBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)

	// arrange
	addBookCmd, err := addbook.BuildCommand(
		bookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		"978-1-098-10013-1",
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		3,
		fakeClock.Add(time.Hour),
	)
	assert.NoError(t, err, "Should build command from valid book data")

	_, err = addBookHandler.Handle(ctx, addBookCmd)
	assert.NoError(t, err, "Should successfully add book to catalog first time")

	// act
	result, err := addBookHandler.Handle(ctx, addBookCmd)

	// assert
	assert.NoError(t, err, "Should succeed (idempotent) when book is already in the catalog")
	assertIdempotentResult(t, result)
}

func Test_CommandHandler_Handle_Rejected_ISBNAlreadyInCatalog(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	addBookHandler := createAddBookHandler(t, wrapper)

	fakeClock := time.Unix(0, 0).UTC()
	bookID := GivenUniqueID(t)
	otherBookID := GivenUniqueID(t)

	// arrange
	addBookCmd, err := addbook.BuildCommand(
		bookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		"978-1-098-10013-1",
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		3,
		fakeClock.Add(time.Hour),
	)
	assert.NoError(t, err, "Should build command from valid book data")

	_, err = addBookHandler.Handle(ctx, addBookCmd)
	assert.NoError(t, err, "Should successfully add book to catalog")

	// act - same ISBN under a different catalog id
	duplicateCmd, err := addbook.BuildCommand(
		otherBookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		"978-1-098-10013-1",
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		1,
		fakeClock.Add(2*time.Hour),
	)
	assert.NoError(t, err, "Should build command from valid book data")

	result, err := addBookHandler.Handle(ctx, duplicateCmd)

	// assert
	assert.NoError(t, err, "Rejection should not surface as an error")
	assert.True(t, result.Rejected, "Operation should be rejected")
	assert.Equal(t, string(core.RejectionISBNAlreadyInCatalog), result.RejectionReason,
		"Rejection reason should name the duplicate ISBN")

	_, err = wrapper.GetLibraryStore().GetBookByID(ctx, otherBookID.String())
	assert.ErrorIs(t, err, librarystore.ErrBookNotFound, "No catalog row should exist for the rejected entry")
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

func createAddBookHandler(t *testing.T, wrapper Wrapper) addbook.CommandHandler {
	t.Helper()

	handler := addbook.NewCommandHandler(wrapper.GetLibraryStore())

	return handler
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
