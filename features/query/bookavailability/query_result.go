package bookavailability

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// ActiveLoanInfo describes one open loan of the book.
type ActiveLoanInfo struct {
	LoanID     core.LoanIDString
	MemberID   core.MemberIDString
	MemberName string
	DueOn      core.DateUTC
	Overdue    bool
}

// BookAvailability represents the query result for a single catalog entry:
// the copy counts and the open loans holding the missing copies.
type BookAvailability struct {
	BookID           core.BookIDString
	Title            string
	Author           string
	ISBN             core.ISBNString
	TotalCopies      int
	AvailableCopies  int
	CheckedOutCopies int
	Available        bool
	ActiveLoans      []ActiveLoanInfo
}
