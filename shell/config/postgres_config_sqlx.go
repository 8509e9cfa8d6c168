package config

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXTestConfig creates a configured *sqlx.DB for the test database.
func PostgresSQLXTestConfig() *sqlx.DB {
	db, err := sqlx.Open("postgres", PostgresTestDSN())
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	tuneSQLPool(db, sqlTestMaxOpenConnections, sqlTestMaxIdleConnections)

	return db
}

// PostgresSQLXBenchmarkConfig creates a configured *sqlx.DB for the benchmark
// database.
func PostgresSQLXBenchmarkConfig() *sqlx.DB {
	db, err := sqlx.Open("postgres", PostgresBenchmarkDSN())
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	tuneSQLPool(db, sqlBenchmarkMaxOpenConnections, sqlBenchmarkMaxIdleConnections)

	return db
}
