package config

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing shared by every pgx config.
const (
	pgxMaxConnections    = int32(8)
	pgxMinConnections    = int32(2)
	pgxMaxConnLifetime   = time.Hour
	pgxMaxConnIdleTime   = time.Minute * 5
	pgxHealthCheckPeriod = time.Minute
	pgxConnectTimeout    = time.Second * 5
)

// PostgresPGXPoolTestConfig creates a pgxpool.Config for the test database.
func PostgresPGXPoolTestConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresTestDSN())
}

// PostgresPGXPoolSingleConfig creates a pgxpool.Config for the single
// (non-replicated) database.
func PostgresPGXPoolSingleConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresSingleDSN())
}

// PostgresPGXPoolPrimaryConfig creates a pgxpool.Config for the primary node
// of a replicated database.
func PostgresPGXPoolPrimaryConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresPrimaryDSN())
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the replica node
// of a replicated database.
func PostgresPGXPoolReplicaConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresReplicaDSN())
}

// PostgresPGXPoolBenchmarkConfig creates a pgxpool.Config for the benchmark
// database.
func PostgresPGXPoolBenchmarkConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresBenchmarkDSN())
}

func pgxPoolConfig(dsn string) *pgxpool.Config {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("Failed to parse the postgres DSN, error: ", err)
	}

	dbConfig.MaxConns = pgxMaxConnections
	dbConfig.MinConns = pgxMinConnections
	dbConfig.MaxConnLifetime = pgxMaxConnLifetime
	dbConfig.MaxConnIdleTime = pgxMaxConnIdleTime
	dbConfig.HealthCheckPeriod = pgxHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = pgxConnectTimeout

	return dbConfig
}
