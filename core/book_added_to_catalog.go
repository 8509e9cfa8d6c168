package core

import "time"

// BookAddedToCatalogChangeType is the change type identifier.
const BookAddedToCatalogChangeType = "BookAddedToCatalog"

// BookAddedToCatalog represents a new title entering the catalog with all of
// its copies available.
type BookAddedToCatalog struct {
	Book       Book
	OccurredAt time.Time
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog change.
func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	return BookAddedToCatalog{
		Book:       book,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c BookAddedToCatalog) ChangeType() string {
	return BookAddedToCatalogChangeType
}

// HasOccurredAt returns when this change occurred.
func (c BookAddedToCatalog) HasOccurredAt() time.Time {
	return c.OccurredAt
}
