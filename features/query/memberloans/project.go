package memberloans

import (
	"slices"
	"strings"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ProjectMemberLoanHistory implements the query logic for a member's loan
// history. This is a pure function with no side effects - it takes the
// member's loan details as currently stored and returns the projected
// history.
//
// Query Logic:
//
//	GIVEN: All loans of the member with their book titles
//	WHEN: MemberLoans query is executed
//	THEN: MemberLoanHistory is returned with status and fine derived per loan
//	INCLUDES: Open and returned loans, fines frozen at the return date
//	DETAILS: Open loans come first ordered by due date, returned loans follow
//	         most recent checkout first
func ProjectMemberLoanHistory(details []librarystore.LoanDetail, query Query, policy core.LoanPolicy) MemberLoanHistory {
	loans := make([]LoanInfo, 0, len(details))
	openCount := 0
	var outstandingFines core.Cents

	for _, detail := range details {
		loan := detail.Loan
		fine := loan.ComputeFine(query.AsOf, policy.FinePerDayRate)

		if !loan.IsReturned() {
			openCount++
		}

		if !loan.FinePaid {
			outstandingFines += fine
		}

		loans = append(loans, LoanInfo{
			LoanID:       loan.ID,
			BookID:       loan.BookID,
			BookTitle:    detail.BookTitle,
			CheckedOutOn: loan.CheckedOutOn,
			DueOn:        loan.DueOn,
			ReturnedOn:   loan.ReturnedOn,
			Status:       loan.Status(query.AsOf),
			Fine:         fine,
			FinePaid:     loan.FinePaid,
		})
	}

	slices.SortFunc(loans, func(a, b LoanInfo) int {
		aOpen := a.ReturnedOn.IsZero()
		bOpen := b.ReturnedOn.IsZero()

		switch {
		case aOpen && !bOpen:
			return -1
		case !aOpen && bOpen:
			return 1
		case aOpen:
			if c := a.DueOn.Compare(b.DueOn); c != 0 {
				return c
			}
		default:
			if c := b.CheckedOutOn.Compare(a.CheckedOutOn); c != 0 {
				return c
			}
		}

		return strings.Compare(a.LoanID, b.LoanID)
	})

	return MemberLoanHistory{
		MemberID:         query.MemberID.String(),
		Loans:            loans,
		OpenCount:        openCount,
		Count:            len(loans),
		OutstandingFines: outstandingFines,
	}
}
