package core

import "time"

// BookRemovedFromCatalogChangeType is the change type identifier.
const BookRemovedFromCatalogChangeType = "BookRemovedFromCatalog"

// BookRemovedFromCatalog represents a title leaving the catalog.
// A title can only be removed while no loan has ever referenced it.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	OccurredAt time.Time
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog change.
func BuildBookRemovedFromCatalog(bookID BookIDString, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     bookID,
		OccurredAt: occurredAt.UTC(),
	}
}

// ChangeType returns the change type identifier.
func (c BookRemovedFromCatalog) ChangeType() string {
	return BookRemovedFromCatalogChangeType
}

// HasOccurredAt returns when this change occurred.
func (c BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return c.OccurredAt
}
