package checkeligibility

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	GetMemberByID(ctx context.Context, memberID core.MemberIDString) (core.Member, librarystore.MemberVersionInt64, error)
	GetBookByID(ctx context.Context, bookID core.BookIDString) (core.Book, error)
}

// QueryHandler orchestrates the query workflow: loading the member and the
// book, and delegating the verdict to the pure projection.
type QueryHandler struct {
	store  LibraryStore
	policy core.LoanPolicy
}

// NewQueryHandler creates a new query handler with the given store and
// lending policy.
func NewQueryHandler(store LibraryStore, policy core.LoanPolicy) QueryHandler {
	return QueryHandler{store: store, policy: policy}
}

// Handle executes the query. An unknown member or book is an error, the
// report only covers entities that exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (EligibilityReport, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	member, _, err := h.store.GetMemberByID(ctx, query.MemberID.String())
	if err != nil {
		return EligibilityReport{}, err
	}

	book, err := h.store.GetBookByID(ctx, query.BookID.String())
	if err != nil {
		return EligibilityReport{}, err
	}

	return ProjectEligibility(member, book, h.policy), nil
}
