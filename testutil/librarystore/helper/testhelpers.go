package helper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore/postgresstore"
)

// GivenUniqueID returns a fresh time-ordered id for test entities.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenUniqueISBN returns a random 13-digit ISBN so multiple fixture books
// can live in the catalog at once despite the ISBN uniqueness constraint.
func GivenUniqueISBN(_ testing.TB) string {
	digits := make([]byte, 0, 13)
	digits = append(digits, '9', '7', '8')
	for i := 0; i < 10; i++ {
		digits = append(digits, byte('0'+rand.IntN(10)))
	}

	return string(digits)
}

// GivenDefaultLoanPolicy returns the lending policy with the library defaults.
func GivenDefaultLoanPolicy(t testing.TB) core.LoanPolicy {
	policy, err := core.BuildLoanPolicy()
	assert.NoError(t, err, "error in arranging test data")

	return policy
}

// FixtureBook builds a catalog entry with a unique ISBN and the given number of copies.
func FixtureBook(t testing.TB, bookID uuid.UUID, totalCopies int) core.Book {
	book, err := core.BuildBook(
		bookID,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		GivenUniqueISBN(t),
		"Software Engineering",
		"O'Reilly Media, Inc.",
		time.Date(2021, time.October, 8, 0, 0, 0, 0, time.UTC),
		"A practical guide to aligning software design with business domains.",
		totalCopies,
	)
	assert.NoError(t, err, "error in arranging test data")

	return book
}

// FixtureMember builds an active member with a unique email address and the
// given borrowing limit.
func FixtureMember(t testing.TB, memberID uuid.UUID, borrowingLimit int) core.Member {
	member, err := core.BuildMember(
		memberID,
		"Ravi Kumar",
		fmt.Sprintf("ravi.kumar+%s@example.com", memberID.String()[:8]),
		"+91 98765 43210",
		core.MembershipRegular,
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		borrowingLimit,
		borrowingLimit,
	)
	assert.NoError(t, err, "error in arranging test data")

	return member
}

// GivenBookInCatalog seeds a fixture book through the store and returns it.
func GivenBookInCatalog(
	t testing.TB,
	ctx context.Context,
	store postgresstore.LibraryStore,
	bookID uuid.UUID,
	totalCopies int,
) core.Book {
	book := FixtureBook(t, bookID, totalCopies)
	err := store.AddBook(ctx, book)
	assert.NoError(t, err, "error in arranging test data")

	return book
}

// GivenMemberRegistered seeds an active fixture member through the store and returns it.
func GivenMemberRegistered(
	t testing.TB,
	ctx context.Context,
	store postgresstore.LibraryStore,
	memberID uuid.UUID,
	borrowingLimit int,
) core.Member {
	member := FixtureMember(t, memberID, borrowingLimit)
	err := store.RegisterMember(ctx, member)
	assert.NoError(t, err, "error in arranging test data")

	return member
}

// GivenMemberDeactivated seeds a member and closes the account right away.
func GivenMemberDeactivated(
	t testing.TB,
	ctx context.Context,
	store postgresstore.LibraryStore,
	memberID uuid.UUID,
) core.Member {
	member := GivenMemberRegistered(t, ctx, store, memberID, 3)

	// A fresh member row starts at version 0.
	err := store.DeactivateMember(ctx, member.ID, 0)
	assert.NoError(t, err, "error in arranging test data")

	member.Active = false

	return member
}

// GivenBookCheckedOut seeds an open loan through the store's guarded checkout
// and returns the loan. The book and the member must already be seeded.
func GivenBookCheckedOut(
	t testing.TB,
	ctx context.Context,
	store postgresstore.LibraryStore,
	loanID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	checkedOutOn time.Time,
	dueOn time.Time,
) core.Loan {
	_, memberVersion, err := store.GetMemberByID(ctx, memberID.String())
	assert.NoError(t, err, "error in arranging test data")

	loan := core.Loan{
		ID:           loanID.String(),
		BookID:       bookID.String(),
		MemberID:     memberID.String(),
		CheckedOutOn: core.ToDate(checkedOutOn),
		DueOn:        core.ToDate(dueOn),
	}

	err = store.CheckOutBook(ctx, loan, memberVersion)
	assert.NoError(t, err, "error in arranging test data")

	return loan
}

// GivenLoanReturned closes a seeded loan through the store's guarded return
// and returns the loan with the return fields set.
func GivenLoanReturned(
	t testing.TB,
	ctx context.Context,
	store postgresstore.LibraryStore,
	loan core.Loan,
	returnedOn time.Time,
) core.Loan {
	err := store.ReturnBook(ctx, loan.ID, core.ToDate(returnedOn), core.ConditionGood, "")
	assert.NoError(t, err, "error in arranging test data")

	loan.ReturnedOn = core.ToDate(returnedOn)
	loan.ReturnCondition = core.ConditionGood

	return loan
}
