package adapters

import "context"

// DBAdapter is the execution surface the store needs from a database client.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is a driver-neutral view of query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult is a driver-neutral view of a statement result.
type DBResult interface {
	RowsAffected() (int64, error)
}
