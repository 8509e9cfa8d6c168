// Package config provides database configuration helpers for PostgreSQL connections
// used by the library management system.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB) with
// pre-configured test and benchmark database DSNs. DSNs can be overridden
// through environment variables, optionally loaded from a .env file.
//
// This package is part of the shell (infrastructure) layer, providing
// database connection configuration for the loan lifecycle system.
package config
