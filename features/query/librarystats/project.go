package librarystats

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ProjectLibraryStatistics implements the query logic for the library
// dashboard. This is a pure function with no side effects - it takes the
// stored counts and the open loan details and returns the projected numbers.
//
// Query Logic:
//
//	GIVEN: The stored counts and all open loans
//	WHEN: LibraryStatistics query is executed
//	THEN: LibraryStatistics is returned with stored and derived numbers
//	DETAILS: Overdue loans and accruing fines are derived from the open
//	         loans at the policy rate, they are never stored
func ProjectLibraryStatistics(
	counts librarystore.LibraryCounts,
	openLoans []librarystore.LoanDetail,
	query Query,
	policy core.LoanPolicy,
) LibraryStatistics {
	loans := make([]core.Loan, 0, len(openLoans))
	for _, detail := range openLoans {
		loans = append(loans, detail.Loan)
	}

	overdueCount := 0
	var accruingFines core.Cents

	for _, fine := range policy.OverdueLoans(query.AsOf, loans) {
		overdueCount++
		accruingFines += fine
	}

	return LibraryStatistics{
		AsOf:             core.ToDate(query.AsOf),
		TotalBooks:       counts.TotalBooks,
		TotalCopies:      counts.TotalCopies,
		AvailableCopies:  counts.AvailableCopies,
		CheckedOutCopies: counts.TotalCopies - counts.AvailableCopies,
		TotalMembers:     counts.TotalMembers,
		ActiveMembers:    counts.ActiveMembers,
		OpenLoans:        counts.OpenLoans,
		OverdueLoans:     overdueCount,
		AccruingFines:    accruingFines,
	}
}
