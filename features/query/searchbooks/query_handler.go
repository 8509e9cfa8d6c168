package searchbooks

import (
	"context"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// LibraryStore defines the store operations needed by this query handler.
type LibraryStore interface {
	SearchBooks(ctx context.Context, criteria librarystore.BookSearchCriteria) ([]core.Book, int, error)
}

// QueryHandler orchestrates the query workflow: running the paged search and
// wrapping the page in its envelope.
type QueryHandler struct {
	store LibraryStore
}

// NewQueryHandler creates a new query handler with the given store.
func NewQueryHandler(store LibraryStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query. The page window is clamped once here, so the
// store and the result envelope agree on what was fetched.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookSearchResult, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	criteria := librarystore.BookSearchCriteria{
		Text:     query.Text,
		Genre:    query.Genre,
		Author:   query.Author,
		Page:     query.Page,
		PageSize: query.PageSize,
	}.Normalized()

	books, totalCount, err := h.store.SearchBooks(ctx, criteria)
	if err != nil {
		return BookSearchResult{}, err
	}

	return ProjectBookSearchResult(books, totalCount, criteria), nil
}
