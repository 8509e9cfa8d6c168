// Package adapters bridges the library store onto the supported PostgreSQL
// client libraries: pgxpool.Pool, database/sql and sqlx. Every adapter
// exposes the same minimal DBAdapter surface, so the store can build and run
// statements without knowing which driver sits underneath.
//
// The pgx adapter additionally routes reads to an optional replica pool,
// driven by the consistency level carried in the context. The stdlib adapter
// covers both sql.DB and sqlx.DB through their shared execution methods.
package adapters
