package searchbooks

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ProjectBookSearchResult implements the query logic wrapping one page of
// matches in its page envelope. This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The matching page and the total match count from the store
//	WHEN: SearchBooks query is executed
//	THEN: BookSearchResult is returned with the clamped page window
//	DETAILS: TotalPages rounds up, a page past the end yields an empty page
//	         with the envelope intact
func ProjectBookSearchResult(books []core.Book, totalCount int, criteria librarystore.BookSearchCriteria) BookSearchResult {
	totalPages := 0
	if criteria.PageSize > 0 {
		totalPages = (totalCount + criteria.PageSize - 1) / criteria.PageSize
	}

	return BookSearchResult{
		Books:      books,
		TotalCount: totalCount,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages,
	}
}
