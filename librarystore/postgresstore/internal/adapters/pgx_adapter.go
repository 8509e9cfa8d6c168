package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// PGXAdapter implements DBAdapter for pgx connection pools. It is the only
// adapter with replica support: reads that tolerate eventual consistency go
// to the replica pool when one is configured.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

// NewPGXAdapter creates an adapter that sends everything to one pool.
func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: pool}
}

// NewPGXAdapterWithReplica creates an adapter that can offload reads to a
// replica pool.
func NewPGXAdapterWithReplica(pool *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: pool, replica: replica}
}

// Query runs the statement on the pool chosen by the consistency level in
// the context.
func (a *PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.readPool(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

// Exec runs the statement, always on the primary pool.
func (a *PGXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := a.primary.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxResult{tag: tag}, nil
}

// readPool picks the replica for eventually consistent reads and the
// primary for everything else.
func (a *PGXAdapter) readPool(ctx context.Context) *pgxpool.Pool {
	if a.replica != nil && librarystore.GetConsistencyLevel(ctx) == librarystore.EventualConsistency {
		return a.replica
	}

	return a.primary
}

type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Next() bool {
	return r.rows.Next()
}

func (r pgxRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Close closes the iterator. pgx reports close failures through rows.Err
// rather than a return value, so this never errors itself.
func (r pgxRows) Close() error {
	r.rows.Close()

	return nil
}

type pgxResult struct {
	tag pgconn.CommandTag
}

func (r pgxResult) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

var _ DBAdapter = (*PGXAdapter)(nil)
