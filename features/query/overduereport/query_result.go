package overduereport

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// OverdueLoanInfo describes one overdue loan together with the book and
// member it references and the fine it has accrued so far.
type OverdueLoanInfo struct {
	LoanID      core.LoanIDString
	BookID      core.BookIDString
	BookTitle   string
	MemberID    core.MemberIDString
	MemberName  string
	DueOn       core.DateUTC
	DaysOverdue int
	AccruedFine core.Cents
}

// OverdueReport represents the query result listing every overdue loan as of
// the query date, most overdue first.
type OverdueReport struct {
	AsOf       core.DateUTC
	Loans      []OverdueLoanInfo
	Count      int
	TotalFines core.Cents
}
