package core

import "time"

// StateChange is the interface implemented by all domain state changes.
// A state change is the value produced by a successful decision; the storage
// layer applies it to the database with a guarded write. Changes represent
// meaningful business occurrences like BookCheckedOut and FineSettled rather
// than generic create/update operations.
type StateChange interface {
	// ChangeType returns the change type identifier.
	ChangeType() string

	// HasOccurredAt returns when this change occurred.
	HasOccurredAt() time.Time
}
