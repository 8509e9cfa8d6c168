package bookavailability

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	GetBookByID(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	ActiveLoanDetailsForBook(ctx context.Context, bookID core.BookIDString) ([]librarystore.LoanDetail, error)
}

// QueryHandler orchestrates the query workflow: loading the book and its open
// loans, and delegating the shaping to the pure projection.
type QueryHandler struct {
	store LibraryStore
}

// NewQueryHandler creates a new query handler with the given store.
func NewQueryHandler(store LibraryStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query. An unknown book is an error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookAvailability, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	book, err := h.store.GetBookByID(ctx, query.BookID.String())
	if err != nil {
		return BookAvailability{}, err
	}

	details, err := h.store.ActiveLoanDetailsForBook(ctx, query.BookID.String())
	if err != nil {
		return BookAvailability{}, err
	}

	return ProjectBookAvailability(book, details, query), nil
}
