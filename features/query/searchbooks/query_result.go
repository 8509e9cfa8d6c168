package searchbooks

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// BookSearchResult represents one page of catalog matches together with the
// page envelope actually used, after clamping. TotalCount and TotalPages span
// all pages of the match.
type BookSearchResult struct {
	Books      []core.Book
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}
