package librarystats

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	CollectLibraryCounts(ctx context.Context) (librarystore.LibraryCounts, error)
	ActiveLoanDetails(ctx context.Context) ([]librarystore.LoanDetail, error)
}

// QueryHandler orchestrates the query workflow: collecting the stored counts,
// loading the open loans, and delegating the derivation to the pure
// projection.
type QueryHandler struct {
	store  LibraryStore
	policy core.LoanPolicy
}

// NewQueryHandler creates a new query handler with the given store and
// lending policy.
func NewQueryHandler(store LibraryStore, policy core.LoanPolicy) QueryHandler {
	return QueryHandler{store: store, policy: policy}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LibraryStatistics, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	counts, err := h.store.CollectLibraryCounts(ctx)
	if err != nil {
		return LibraryStatistics{}, err
	}

	openLoans, err := h.store.ActiveLoanDetails(ctx)
	if err != nil {
		return LibraryStatistics{}, err
	}

	return ProjectLibraryStatistics(counts, openLoans, query, h.policy), nil
}
