package bookavailability

import (
	"slices"
	"strings"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ProjectBookAvailability implements the query logic for a catalog entry's
// availability. This is a pure function with no side effects - it takes the
// book and its open loan details as currently stored and returns the
// projected view.
//
// Query Logic:
//
//	GIVEN: A catalog entry and the open loans referencing it
//	WHEN: BookAvailability query is executed
//	THEN: BookAvailability is returned with the copy counts and the holders
//	INCLUDES: An overdue flag per open loan, evaluated as of the query date
//	DETAILS: Loans are ordered by due date, the one due first leads
func ProjectBookAvailability(book core.Book, details []librarystore.LoanDetail, query Query) BookAvailability {
	activeLoans := make([]ActiveLoanInfo, 0, len(details))

	for _, detail := range details {
		activeLoans = append(activeLoans, ActiveLoanInfo{
			LoanID:     detail.Loan.ID,
			MemberID:   detail.Loan.MemberID,
			MemberName: detail.MemberName,
			DueOn:      detail.Loan.DueOn,
			Overdue:    detail.Loan.IsOverdue(query.AsOf),
		})
	}

	slices.SortFunc(activeLoans, func(a, b ActiveLoanInfo) int {
		if c := a.DueOn.Compare(b.DueOn); c != 0 {
			return c
		}

		return strings.Compare(a.LoanID, b.LoanID)
	})

	return BookAvailability{
		BookID:           book.ID,
		Title:            book.Title,
		Author:           book.Author,
		ISBN:             book.ISBN,
		TotalCopies:      book.TotalCopies,
		AvailableCopies:  book.AvailableCopies,
		CheckedOutCopies: book.TotalCopies - book.AvailableCopies,
		Available:        book.CheckAvailability(),
		ActiveLoans:      activeLoans,
	}
}
