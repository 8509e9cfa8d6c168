package librarystats

import (
	"time"
)

const (
	queryType = "LibraryStatistics"
)

// Query represents the intent to collect the library's headline numbers.
// Overdue counts and fine totals are evaluated as of the given date.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query evaluating derived numbers as of the given date.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
