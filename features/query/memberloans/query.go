package memberloans

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "MemberLoans"
)

// Query represents the intent to list a member's loans, open and returned.
// Derived attributes (status, fines) are evaluated as of the given date.
type Query struct {
	MemberID uuid.UUID
	AsOf     time.Time
}

// BuildQuery creates a new Query with the provided member ID and evaluation date.
func BuildQuery(memberID uuid.UUID, asOf time.Time) Query {
	return Query{
		MemberID: memberID,
		AsOf:     asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
