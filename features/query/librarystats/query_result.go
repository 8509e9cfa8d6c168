package librarystats

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// LibraryStatistics represents the query result aggregating the library's
// headline numbers. The stored counts come straight from the store; overdue
// loans and accruing fines are derived from the open loans as of the query
// date.
type LibraryStatistics struct {
	AsOf             core.DateUTC
	TotalBooks       int
	TotalCopies      int
	AvailableCopies  int
	CheckedOutCopies int
	TotalMembers     int
	ActiveMembers    int
	OpenLoans        int
	OverdueLoans     int
	AccruingFines    core.Cents
}
