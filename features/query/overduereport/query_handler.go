package overduereport

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	ActiveLoanDetails(ctx context.Context) ([]librarystore.LoanDetail, error)
}

// QueryHandler orchestrates the query workflow: loading the open loans and
// delegating the overdue evaluation to the pure projection.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueReport, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	details, err := h.store.ActiveLoanDetails(ctx)
	if err != nil {
		return OverdueReport{}, err
	}

	return ProjectOverdueReport(details, query, h.policy), nil
}
