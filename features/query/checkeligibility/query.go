package checkeligibility

import (
	"github.com/google/uuid"
)

const (
	queryType = "CheckEligibility"
)

// Query represents the intent to check whether a member may borrow a book.
type Query struct {
	MemberID uuid.UUID
	BookID   uuid.UUID
}

// BuildQuery creates a new Query with the provided member and book IDs.
func BuildQuery(memberID uuid.UUID, bookID uuid.UUID) Query {
	return Query{
		MemberID: memberID,
		BookID:   bookID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
