package checkeligibility_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/query/checkeligibility"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper"                 //nolint:revive
	. "github.com/BhuvanMohan2005/library-management-go/testutil/librarystore/helper/postgreswrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ReportsAllowed_WhenNoRuleBlocks(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetLibraryStore()

	// arrange
	CleanUp(t, wrapper)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)

	GivenBookInCatalog(t, ctxWithTimeout, store, bookID, 2)
	GivenMemberRegistered(t, ctxWithTimeout, store, memberID, 3)

	queryHandler := checkeligibility.NewQueryHandler(store, GivenDefaultLoanPolicy(t))

	// act
	query := checkeligibility.BuildQuery(memberID, bookID)
	result, err := queryHandler.Handle(ctxWithTimeout, query)

	// assert
	assert.NoError(t, err, "Query should succeed")
	assert.Equal(t, memberID.String(), result.MemberID, "Should return the queried member id")
	assert.Equal(t, bookID.String(), result.BookID, "Should return the queried book id")
	assert.True(t, result.Allowed, "Checkout should be allowed")
	assert.Empty(t, result.Reasons, "No rule should block the checkout")
}

func Test_QueryHandler_Handle_ReportsEveryBlockingRule(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetLibraryStore()

	// arrange - an inactive member asking for a book whose only copy is out
	CleanUp(t, wrapper)
	bookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)
	otherMemberID := GivenUniqueID(t)
	loanID := GivenUniqueID(t)
	fakeClock := time.Unix(0, 0).UTC()

	GivenBookInCatalog(t, ctxWithTimeout, store, bookID, 1)
	GivenMemberDeactivated(t, ctxWithTimeout, store, memberID)
	GivenMemberRegistered(t, ctxWithTimeout, store, otherMemberID, 3)
	GivenBookCheckedOut(t, ctxWithTimeout, store, loanID, bookID, otherMemberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	queryHandler := checkeligibility.NewQueryHandler(store, GivenDefaultLoanPolicy(t))

	// act
	query := checkeligibility.BuildQuery(memberID, bookID)
	result, err := queryHandler.Handle(ctxWithTimeout, query)

	// assert
	assert.NoError(t, err, "Query should succeed")
	assert.False(t, result.Allowed, "Checkout should be blocked")
	assert.Len(t, result.Reasons, 2, "Both blocking rules should be reported at once")

	if len(result.Reasons) >= 2 {
		// The account state leads, availability comes last
		assert.Equal(t, core.RejectionMemberNotActive, result.Reasons[0].Code, "First reason should be the account state")
		assert.Equal(t, "the member account is not active", result.Reasons[0].Description,
			"First reason should carry its description")
		assert.Equal(t, core.RejectionNoCopiesAvailable, result.Reasons[1].Code, "Second reason should be availability")
		assert.Equal(t, "no copies of this book are currently available", result.Reasons[1].Description,
			"Second reason should carry its description")
	}
}

func Test_QueryHandler_Handle_ReportsLimitExceeded_WhenMemberIsAtTheirLimit(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetLibraryStore()

	// arrange - a member with a limit of one and one open loan
	CleanUp(t, wrapper)
	borrowedBookID := GivenUniqueID(t)
	wantedBookID := GivenUniqueID(t)
	memberID := GivenUniqueID(t)
	loanID := GivenUniqueID(t)
	fakeClock := time.Unix(0, 0).UTC()

	GivenBookInCatalog(t, ctxWithTimeout, store, borrowedBookID, 1)
	GivenBookInCatalog(t, ctxWithTimeout, store, wantedBookID, 1)
	GivenMemberRegistered(t, ctxWithTimeout, store, memberID, 1)
	GivenBookCheckedOut(t, ctxWithTimeout, store, loanID, borrowedBookID, memberID,
		fakeClock, fakeClock.AddDate(0, 0, 14))

	queryHandler := checkeligibility.NewQueryHandler(store, GivenDefaultLoanPolicy(t))

	// act
	query := checkeligibility.BuildQuery(memberID, wantedBookID)
	result, err := queryHandler.Handle(ctxWithTimeout, query)

	// assert
	assert.NoError(t, err, "Query should succeed")
	assert.False(t, result.Allowed, "Checkout should be blocked")
	assert.Len(t, result.Reasons, 1, "Only the borrowing limit should block")

	if len(result.Reasons) >= 1 {
		assert.Equal(t, core.RejectionLimitExceeded, result.Reasons[0].Code, "Reason should be the borrowing limit")
		assert.Equal(t, "the member has reached their borrowing limit", result.Reasons[0].Description,
			"Reason should carry its description")
	}
}

func Test_QueryHandler_Handle_Error_MemberNotFound(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetLibraryStore()

	// arrange
	CleanUp(t, wrapper)
	bookID := GivenUniqueID(t)
	unknownMemberID := GivenUniqueID(t)

	GivenBookInCatalog(t, ctxWithTimeout, store, bookID, 1)

	queryHandler := checkeligibility.NewQueryHandler(store, GivenDefaultLoanPolicy(t))

	// act
	query := checkeligibility.BuildQuery(unknownMemberID, bookID)
	result, err := queryHandler.Handle(ctxWithTimeout, query)

	// assert
	assert.ErrorIs(t, err, librarystore.ErrMemberNotFound, "Should report the unknown member")
	assert.Empty(t, result.MemberID, "Result should be empty on error")
}
