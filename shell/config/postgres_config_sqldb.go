package config

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// Pool sizing for the database/sql based clients. Benchmarks get a larger
// pool so the connection limit is not what gets measured.
const (
	sqlTestMaxOpenConnections      = 50
	sqlTestMaxIdleConnections      = 10
	sqlBenchmarkMaxOpenConnections = 200
	sqlBenchmarkMaxIdleConnections = 20
	sqlMaxConnLifetime             = time.Hour
	sqlMaxConnIdleTime             = time.Minute * 5
)

// sqlPoolSettings is the tuning surface shared by sql.DB and sqlx.DB.
type sqlPoolSettings interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
	SetConnMaxIdleTime(d time.Duration)
	PingContext(ctx context.Context) error
}

// tuneSQLPool applies the pool limits and verifies connectivity.
func tuneSQLPool(db sqlPoolSettings, maxOpen, maxIdle int) {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(sqlMaxConnLifetime)
	db.SetConnMaxIdleTime(sqlMaxConnIdleTime)

	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		log.Fatal("Failed to ping database, error: ", pingErr)
	}
}

// PostgresSQLDBTestConfig creates a configured *sql.DB for the test database.
func PostgresSQLDBTestConfig() *sql.DB {
	db, err := sql.Open("postgres", PostgresTestDSN())
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	tuneSQLPool(db, sqlTestMaxOpenConnections, sqlTestMaxIdleConnections)

	return db
}

// PostgresSQLDBBenchmarkConfig creates a configured *sql.DB for the benchmark
// database.
func PostgresSQLDBBenchmarkConfig() *sql.DB {
	db, err := sql.Open("postgres", PostgresBenchmarkDSN())
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	tuneSQLPool(db, sqlBenchmarkMaxOpenConnections, sqlBenchmarkMaxIdleConnections)

	return db
}
