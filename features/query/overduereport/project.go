package overduereport

import (
	"slices"
	"strings"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ProjectOverdueReport implements the query logic to determine every overdue
// loan. This is a pure function with no side effects - it takes the open loan
// details as currently stored and returns the projected report.
//
// Query Logic:
//
//	GIVEN: All open loans with their book titles and member names
//	WHEN: OverdueReport query is executed
//	THEN: OverdueReport is returned with every loan past due as of the query date
//	INCLUDES: Days overdue and the fine accrued at the policy rate
//	EXCLUDES: Open loans within their period, and loans due exactly on the query date
//	DETAILS: Loans are ordered most overdue first
func ProjectOverdueReport(details []librarystore.LoanDetail, query Query, policy core.LoanPolicy) OverdueReport {
	loans := make([]core.Loan, 0, len(details))
	detailByLoanID := make(map[core.LoanIDString]librarystore.LoanDetail, len(details))

	for _, detail := range details {
		loans = append(loans, detail.Loan)
		detailByLoanID[detail.Loan.ID] = detail
	}

	var overdueLoans []OverdueLoanInfo
	var totalFines core.Cents

	for loan, fine := range policy.OverdueLoans(query.AsOf, loans) {
		detail := detailByLoanID[loan.ID]

		overdueLoans = append(overdueLoans, OverdueLoanInfo{
			LoanID:      loan.ID,
			BookID:      loan.BookID,
			BookTitle:   detail.BookTitle,
			MemberID:    loan.MemberID,
			MemberName:  detail.MemberName,
			DueOn:       loan.DueOn,
			DaysOverdue: loan.DaysOverdue(query.AsOf),
			AccruedFine: fine,
		})

		totalFines += fine
	}

	slices.SortFunc(overdueLoans, func(a, b OverdueLoanInfo) int {
		if c := a.DueOn.Compare(b.DueOn); c != 0 {
			return c
		}

		return strings.Compare(a.LoanID, b.LoanID)
	})

	return OverdueReport{
		AsOf:       core.ToDate(query.AsOf),
		Loans:      overdueLoans,
		Count:      len(overdueLoans),
		TotalFines: totalFines,
	}
}
