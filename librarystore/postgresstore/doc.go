// Package postgresstore implements the PostgreSQL engine of the library store.
//
// All reads and all writes are single SQL statements built with goqu and
// executed through a small internal database adapter, so the engine works
// unchanged with pgxpool.Pool, database/sql, and sqlx.DB connections.
//
// Optimistic concurrency without transactions: every state-changing write is
// one guarded statement whose WHERE clauses (and data-modifying CTEs, where
// two tables change together) encode the state the business decision was
// based on. When that state changed underneath the writer, the statement
// affects zero rows and the engine reports
// librarystore.ErrConcurrencyConflict, which command handlers treat as the
// signal to re-load, re-decide and retry.
//
// Observability is optional and dependency-free: loggers, metrics collectors
// and tracing collectors are wired in via functional options and are no-ops
// when absent.
package postgresstore
