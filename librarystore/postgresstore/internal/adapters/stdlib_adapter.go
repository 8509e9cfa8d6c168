package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// sqlExecutor is the query surface shared by sql.DB and sqlx.DB, which lets
// one adapter serve both handles.
type sqlExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StdlibAdapter implements DBAdapter on top of any database/sql compatible
// handle.
type StdlibAdapter struct {
	db sqlExecutor
}

// NewSQLAdapter creates an adapter for a plain database/sql handle.
func NewSQLAdapter(db *sql.DB) *StdlibAdapter {
	return &StdlibAdapter{db: db}
}

// NewSQLXAdapter creates an adapter for an sqlx handle.
func NewSQLXAdapter(db *sqlx.DB) *StdlibAdapter {
	return &StdlibAdapter{db: db}
}

// Query runs the statement and wraps the standard rows.
func (a *StdlibAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdRows{rows: rows}, nil
}

// Exec runs the statement and wraps the standard result.
func (a *StdlibAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdResult{result: result}, nil
}

type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool {
	return r.rows.Next()
}

func (r stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r stdRows) Close() error {
	return r.rows.Close()
}

type stdResult struct {
	result sql.Result
}

func (r stdResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}

var _ DBAdapter = (*StdlibAdapter)(nil)
