package bookavailability_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/query/bookavailability"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

func Test_ProjectBookAvailability_ReportsCountsAndHolders(t *testing.T) {
	// arrange
	bookID := uuid.New()
	asOf := time.Date(2025, time.March, 21, 12, 0, 0, 0, time.UTC)

	book := givenBook(t, bookID, 1, 3)

	overdueHolder := givenActiveLoanDetail(t, bookID, "Asha Rao",
		time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	onTimeHolder := givenActiveLoanDetail(t, bookID, "Priya Sharma",
		time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC))

	details := []librarystore.LoanDetail{onTimeHolder, overdueHolder}

	// act
	availability := bookavailability.ProjectBookAvailability(book, details, bookavailability.BuildQuery(bookID, asOf))

	// assert
	assert.Equal(t, bookID.String(), availability.BookID, "Result should reference the book")
	assert.Equal(t, 3, availability.TotalCopies, "Total copies should carry over")
	assert.Equal(t, 1, availability.AvailableCopies, "Available copies should carry over")
	assert.Equal(t, 2, availability.CheckedOutCopies, "Two copies are out")
	assert.True(t, availability.Available, "One copy is still on the shelf")

	require.Len(t, availability.ActiveLoans, 2, "Both holders should be listed")
	assert.Equal(t, overdueHolder.Loan.ID, availability.ActiveLoans[0].LoanID, "The loan due first should lead")
	assert.True(t, availability.ActiveLoans[0].Overdue, "Due March 15, queried March 21")
	assert.Equal(t, "Asha Rao", availability.ActiveLoans[0].MemberName, "Holder name should carry over")
	assert.False(t, availability.ActiveLoans[1].Overdue, "Due March 30, queried March 21")
}

func Test_ProjectBookAvailability_NoCopiesLeft(t *testing.T) {
	// arrange
	bookID := uuid.New()
	book := givenBook(t, bookID, 0, 1)

	details := []librarystore.LoanDetail{
		givenActiveLoanDetail(t, bookID, "Asha Rao", time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)),
	}

	// act
	availability := bookavailability.ProjectBookAvailability(book, details, bookavailability.BuildQuery(bookID, time.Now()))

	// assert
	assert.False(t, availability.Available, "No copy is on the shelf")
	assert.Equal(t, 1, availability.CheckedOutCopies, "The single copy is out")
}

func Test_ProjectBookAvailability_NoOpenLoans(t *testing.T) {
	// arrange
	bookID := uuid.New()
	book := givenBook(t, bookID, 2, 2)

	// act
	availability := bookavailability.ProjectBookAvailability(book, nil, bookavailability.BuildQuery(bookID, time.Now()))

	// assert
	assert.True(t, availability.Available, "Every copy is on the shelf")
	assert.Zero(t, availability.CheckedOutCopies, "Nothing is out")
	assert.Empty(t, availability.ActiveLoans, "No holders should be listed")
}

// Test helper functions with t.Helper() for better error reporting

func givenBook(t *testing.T, bookID uuid.UUID, available int, total int) core.Book {
	t.Helper()

	book, err := core.BuildBook(
		bookID,
		"Learning Go",
		"Jon Bodner",
		"978-1-098-10013-1",
		"Software",
		"O'Reilly Media",
		time.Time{},
		"",
		total,
	)
	require.NoError(t, err, "Should build the book fixture")

	book.AvailableCopies = available

	return book
}

func givenActiveLoanDetail(t *testing.T, bookID uuid.UUID, memberName string, dueOn time.Time) librarystore.LoanDetail {
	t.Helper()

	return librarystore.LoanDetail{
		Loan: core.Loan{
			ID:           uuid.New().String(),
			BookID:       bookID.String(),
			MemberID:     uuid.New().String(),
			CheckedOutOn: core.AddDays(core.ToDate(dueOn), -14),
			DueOn:        core.ToDate(dueOn),
		},
		BookTitle:  "Learning Go",
		MemberName: memberName,
	}
}
