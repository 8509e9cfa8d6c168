package memberloans

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// LoanInfo describes one loan of the member. Status and Fine are derived as
// of the query date; for a returned loan the fine is frozen at the amount
// accrued on the return date.
type LoanInfo struct {
	LoanID       core.LoanIDString
	BookID       core.BookIDString
	BookTitle    string
	CheckedOutOn core.DateUTC
	DueOn        core.DateUTC
	ReturnedOn   core.DateUTC // zero while the loan is open
	Status       core.LoanStatusString
	Fine         core.Cents
	FinePaid     bool
}

// MemberLoanHistory represents the query result: the member's loans with open
// ones first, and the total of fines not yet settled.
type MemberLoanHistory struct {
	MemberID         core.MemberIDString
	Loans            []LoanInfo
	OpenCount        int
	Count            int
	OutstandingFines core.Cents
}
