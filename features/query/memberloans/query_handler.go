package memberloans

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	LoanDetailsForMember(ctx context.Context, memberID core.MemberIDString) ([]librarystore.LoanDetail, error)
}

// QueryHandler orchestrates the query workflow: loading the member's loans
// and delegating the shaping to the pure projection.
type QueryHandler struct {
	store  LibraryStore
	policy core.LoanPolicy
}

// NewQueryHandler creates a new query handler with the given store and
// lending policy.
func NewQueryHandler(store LibraryStore, policy core.LoanPolicy) QueryHandler {
	return QueryHandler{store: store, policy: policy}
}

// Handle executes the query. A member without any loans, including one that
// was never registered, yields an empty history.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberLoanHistory, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	details, err := h.store.LoanDetailsForMember(ctx, query.MemberID.String())
	if err != nil {
		return MemberLoanHistory{}, err
	}

	return ProjectMemberLoanHistory(details, query, h.policy), nil
}
