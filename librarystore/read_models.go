package librarystore

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// LoanDetail pairs a loan with the book title and member name it references,
// as produced by the store's join reads. Derived attributes (status, overdue
// flag, fine) stay derived: projections compute them from the loan dates and
// the policy, never from stored columns.
type LoanDetail struct {
	Loan       core.Loan
	BookTitle  string
	MemberName string
}

const (
	// DefaultSearchPageSize applies when a search leaves PageSize unset.
	DefaultSearchPageSize = 20

	// MaxSearchPageSize caps how many rows one search page may return.
	MaxSearchPageSize = 100
)

// BookSearchCriteria describes a catalog search: a case-insensitive substring
// match over title, description and ISBN, optional genre and author filters,
// and page windowing. Page is 1-based; a zero PageSize falls back to the
// default page size.
type BookSearchCriteria struct {
	Text     string
	Genre    string
	Author   string
	Page     int
	PageSize int
}

// Normalized returns the criteria with the page window clamped: a page below
// one becomes one, a non-positive page size falls back to the default, and
// the page size is capped at the maximum.
func (c BookSearchCriteria) Normalized() BookSearchCriteria {
	if c.PageSize <= 0 {
		c.PageSize = DefaultSearchPageSize
	}

	if c.PageSize > MaxSearchPageSize {
		c.PageSize = MaxSearchPageSize
	}

	if c.Page < 1 {
		c.Page = 1
	}

	return c
}

// LibraryCounts carries the dashboard counts the store collects in a single
// statement. Overdue counts and fine totals are not part of this struct
// because they depend on an as-of date and the policy rate; projections
// derive them from the open loans.
type LibraryCounts struct {
	TotalBooks      int
	TotalCopies     int
	AvailableCopies int
	TotalMembers    int
	ActiveMembers   int
	OpenLoans       int
}
