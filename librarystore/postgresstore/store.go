package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/librarystore/postgresstore/internal/adapters"
)

const (
	tableBooks   = "books"
	tableMembers = "members"
	tableLoans   = "loans"

	logMsgBuildStatementFailed = "failed to build sql statement"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgDBExecFailed         = "database execution failed during guarded write"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgReadCompleted        = "read completed"
	logMsgChangeApplied        = "state change applied"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "librarystore operation: "

	logAttrError        = "error"
	logAttrQuery        = "query"
	logAttrOperation    = "operation"
	logAttrRowCount     = "row_count"
	logAttrDurationMS   = "duration_ms"
	logAttrRowsAffected = "rows_affected"

	logActionRead  = "read"
	logActionWrite = "write"

	colID              = "id"
	colTitle           = "title"
	colAuthor          = "author"
	colISBN            = "isbn"
	colGenre           = "genre"
	colPublisher       = "publisher"
	colPublishedOn     = "published_on"
	colDescription     = "description"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colName            = "name"
	colEmail           = "email"
	colPhone           = "phone"
	colMembershipType  = "membership_type"
	colJoinedOn        = "joined_on"
	colBorrowingLimit  = "borrowing_limit"
	colIsActive        = "is_active"
	colVersion         = "version"
	colBookID          = "book_id"
	colMemberID        = "member_id"
	colCheckedOutOn    = "checked_out_on"
	colDueOn           = "due_on"
	colReturnedOn      = "returned_on"
	colReturnCondition = "return_condition"
	colNotes           = "notes"
	colFinePaid        = "fine_paid"
	colUpdatedAt       = "updated_at"

	cteMemberGuard = "member_guard"
	cteCopyClaimed = "copy_claimed"
	cteLoanClosed  = "loan_closed"

	dialectPostgres  = "postgres"
	aliasActiveLoans = "active_loans"
	aliasTotalCount  = "total_count"
	castUUID         = "?::uuid"
	castDate         = "?::date"
	exprNow          = "now()"
	exprCountAll     = "count(*)"
)

type (
	sqlStatementString = string
	rowsAffectedInt64  = int64
)

// LibraryStore is the PostgreSQL storage engine for books, members and loans.
// It leverages a database adapter and supports customizable logging, metrics,
// tracing, and table naming via functional options.
type LibraryStore struct {
	db               adapters.DBAdapter
	tablePrefix      string
	logger           librarystore.Logger
	contextualLogger librarystore.ContextualLogger
	metricsCollector librarystore.MetricsCollector
	tracingCollector librarystore.TracingCollector
}

// NewLibraryStoreFromPGXPool creates a new LibraryStore using a pgx Pool with optional configuration.
func NewLibraryStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewPGXAdapter(db), options...)
}

// NewLibraryStoreFromPGXPoolWithReplica creates a new LibraryStore using a primary
// pgx Pool and a read replica pool. Reads run against the replica whenever the
// context carries librarystore.EventualConsistency; everything else stays on the primary.
func NewLibraryStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (LibraryStore, error) {
	if db == nil || replica == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewLibraryStoreFromSQLDB creates a new LibraryStore using a sql.DB with optional configuration.
func NewLibraryStoreFromSQLDB(db *sql.DB, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLAdapter(db), options...)
}

// NewLibraryStoreFromSQLX creates a new LibraryStore using a sqlx.DB with optional configuration.
func NewLibraryStoreFromSQLX(db *sqlx.DB, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLXAdapter(db), options...)
}

func newLibraryStore(db adapters.DBAdapter, options ...Option) (LibraryStore, error) {
	ls := LibraryStore{
		db: db,
	}

	for _, option := range options {
		if err := option(&ls); err != nil {
			return LibraryStore{}, err
		}
	}

	return ls, nil
}

func (ls LibraryStore) booksTable() string {
	return ls.tablePrefix + tableBooks
}

func (ls LibraryStore) membersTable() string {
	return ls.tablePrefix + tableMembers
}

func (ls LibraryStore) loansTable() string {
	return ls.tablePrefix + tableLoans
}

// executeRead executes a SELECT statement and returns the rows.
func (ls LibraryStore) executeRead(ctx context.Context, sqlQuery sqlStatementString) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := ls.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDuration(ctx, sqlQuery, logActionRead, duration)

	if queryErr != nil {
		ls.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, errors.Join(librarystore.ErrQueryingStoreFailed, queryErr)
	}

	return rows, nil
}

// executeWrite executes a guarded write statement and returns the affected row count.
func (ls LibraryStore) executeWrite(ctx context.Context, sqlStatement sqlStatementString) (rowsAffectedInt64, error) {
	start := time.Now()
	result, execErr := ls.db.Exec(ctx, sqlStatement)
	duration := time.Since(start)
	ls.logQueryWithDuration(ctx, sqlStatement, logActionWrite, duration)

	if execErr != nil {
		ls.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlStatement)

		return 0, errors.Join(librarystore.ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		ls.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, errors.Join(librarystore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// validateWriteResult detects concurrency conflicts: a guarded write that
// affected no rows means the state the decision was based on changed
// underneath it, and the caller should re-load, re-decide and retry.
func (ls LibraryStore) validateWriteResult(obs *writeObserver, rowsAffected rowsAffectedInt64) error {
	if rowsAffected == 0 {
		obs.finishConflict()

		return librarystore.ErrConcurrencyConflict
	}

	obs.finishSuccess(rowsAffected)

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (ls LibraryStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if ls.logger != nil {
			ls.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}
