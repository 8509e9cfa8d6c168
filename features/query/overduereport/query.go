package overduereport

import (
	"time"
)

const (
	queryType = "OverdueReport"
)

// Query represents the intent to list every overdue loan as of a given date.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query evaluating overdueness as of the given date.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
