package bookavailability

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "BookAvailability"
)

// Query represents the intent to inspect a catalog entry's availability.
// Overdue flags on the open loans are evaluated as of the given date.
type Query struct {
	BookID uuid.UUID
	AsOf   time.Time
}

// BuildQuery creates a new Query with the provided book ID and evaluation date.
func BuildQuery(bookID uuid.UUID, asOf time.Time) Query {
	return Query{
		BookID: bookID,
		AsOf:   asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
