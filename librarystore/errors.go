package librarystore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned when a guarded write affected no rows
	// because the state it was based on changed underneath it. It is the only
	// retryable error: handlers re-load, re-decide and try again.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	// ErrBookNotFound is returned when no book row exists for the given id or ISBN.
	ErrBookNotFound = errors.New("book not found in the catalog")

	// ErrMemberNotFound is returned when no member row exists for the given id or email.
	ErrMemberNotFound = errors.New("member not found")

	// ErrLoanNotFound is returned when no loan row exists for the given id.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrNilDatabaseConnection is returned when a nil connection is supplied to a store factory.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	// ErrEmptyTablePrefix is returned when an empty table prefix is supplied to WithTablePrefix.
	ErrEmptyTablePrefix = errors.New("empty table prefix supplied")

	// ErrBuildingQueryFailed is returned when rendering a SQL statement failed.
	ErrBuildingQueryFailed = errors.New("building the SQL statement failed")

	// ErrQueryingStoreFailed is returned when executing a SELECT against the store failed.
	ErrQueryingStoreFailed = errors.New("querying the library store failed")

	// ErrScanningDBRowFailed is returned when scanning a result row failed.
	ErrScanningDBRowFailed = errors.New("scanning the database row failed")

	// ErrExecutingStatementFailed is returned when executing a write statement failed.
	ErrExecutingStatementFailed = errors.New("executing the SQL statement failed")

	// ErrGettingRowsAffectedFailed is returned when the driver could not report the affected row count.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrEnsuringSchemaFailed is returned when creating the tables or indexes failed.
	ErrEnsuringSchemaFailed = errors.New("ensuring the database schema failed")
)

// MemberVersionInt64 is a type alias for int64, representing the optimistic
// concurrency token carried on a member row. Checkout and deactivation bump
// it, so decisions about the same member serialize without storing derived
// state.
type MemberVersionInt64 = int64
