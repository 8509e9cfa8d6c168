package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/BhuvanMohan2005/library-management-go/librarystore/postgresstore"
	"github.com/BhuvanMohan2005/library-management-go/shell/config"
)

// Adapter types selectable through the ADAPTER_TYPE environment variable.
// An empty value selects the pgx pool.
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper hides which database client a test run uses behind one store
// accessor plus the raw statement helpers the fixtures need.
type Wrapper interface {
	GetLibraryStore() postgresstore.LibraryStore
	Close()

	execRaw(ctx context.Context, statement string) error
	scanRow(ctx context.Context, query string, dest any) error
}

// PGXPoolWrapper runs the tests against a pgxpool.Pool.
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	ls   postgresstore.LibraryStore
}

func (w *PGXPoolWrapper) GetLibraryStore() postgresstore.LibraryStore {
	return w.ls
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

func (w *PGXPoolWrapper) execRaw(ctx context.Context, statement string) error {
	_, err := w.pool.Exec(ctx, statement)

	return err
}

func (w *PGXPoolWrapper) scanRow(ctx context.Context, query string, dest any) error {
	return w.pool.QueryRow(ctx, query).Scan(dest)
}

// SQLDBWrapper runs the tests against a plain sql.DB.
type SQLDBWrapper struct {
	db *sql.DB
	ls postgresstore.LibraryStore
}

func (w *SQLDBWrapper) GetLibraryStore() postgresstore.LibraryStore {
	return w.ls
}

func (w *SQLDBWrapper) Close() {
	closeQuietly(w.db)
}

func (w *SQLDBWrapper) execRaw(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)

	return err
}

func (w *SQLDBWrapper) scanRow(ctx context.Context, query string, dest any) error {
	return w.db.QueryRowContext(ctx, query).Scan(dest)
}

// SQLXWrapper runs the tests against an sqlx.DB.
type SQLXWrapper struct {
	db *sqlx.DB
	ls postgresstore.LibraryStore
}

func (w *SQLXWrapper) GetLibraryStore() postgresstore.LibraryStore {
	return w.ls
}

func (w *SQLXWrapper) Close() {
	closeQuietly(w.db)
}

func (w *SQLXWrapper) execRaw(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)

	return err
}

func (w *SQLXWrapper) scanRow(ctx context.Context, query string, dest any) error {
	return w.db.QueryRowContext(ctx, query).Scan(dest)
}

// connectionConfigs selects which database the wrapper connects, since tests
// and benchmarks use separate ones.
type connectionConfigs struct {
	pgxPool func() *pgxpool.Config
	sqlDB   func() *sql.DB
	sqlxDB  func() *sqlx.DB
}

var testConfigs = connectionConfigs{
	pgxPool: config.PostgresPGXPoolTestConfig,
	sqlDB:   config.PostgresSQLDBTestConfig,
	sqlxDB:  config.PostgresSQLXTestConfig,
}

var benchmarkConfigs = connectionConfigs{
	pgxPool: config.PostgresPGXPoolBenchmarkConfig,
	sqlDB:   config.PostgresSQLDBBenchmarkConfig,
	sqlxDB:  config.PostgresSQLXBenchmarkConfig,
}

// CreateWrapperWithTestConfig builds the wrapper for the adapter type named
// in the environment and ensures the schema, so tests run against a blank
// database as well.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresstore.Option) Wrapper {
	wrapper := createWrapper(t, testConfigs, options...)

	schemaErr := wrapper.GetLibraryStore().EnsureSchema(context.Background())
	assert.NoError(t, schemaErr, "error ensuring schema in test setup")

	return wrapper
}

// CreateWrapperWithBenchmarkConfig is CreateWrapperWithTestConfig pointed at
// the benchmark database.
func CreateWrapperWithBenchmarkConfig(t testing.TB) Wrapper {
	wrapper := createWrapper(t, benchmarkConfigs)

	schemaErr := wrapper.GetLibraryStore().EnsureSchema(context.Background())
	assert.NoError(t, schemaErr, "error ensuring schema in benchmark setup")

	return wrapper
}

func createWrapper(t testing.TB, configs connectionConfigs, options ...postgresstore.Option) Wrapper {
	adapterType := adapterTypeFromEnv()

	switch adapterType {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), configs.pgxPool())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		ls, err := postgresstore.NewLibraryStoreFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating library store")

		return &PGXPoolWrapper{pool: connPool, ls: ls}

	case typeSQLDB:
		db := configs.sqlDB()

		ls, err := postgresstore.NewLibraryStoreFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating library store")

		return &SQLDBWrapper{db: db, ls: ls}

	case typeSQLXDB:
		db := configs.sqlxDB()

		ls, err := postgresstore.NewLibraryStoreFromSQLX(db, options...)
		assert.NoError(t, err, "error creating library store")

		return &SQLXWrapper{db: db, ls: ls}

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}
}

// TryCreateLibraryStoreWithTablePrefix attempts store creation with the
// given table prefix and hands the error back, for tests that probe prefix
// validation.
func TryCreateLibraryStoreWithTablePrefix(t testing.TB, prefix string) error {
	options := []postgresstore.Option{postgresstore.WithTablePrefix(prefix)}
	adapterType := adapterTypeFromEnv()

	switch adapterType {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")
		defer connPool.Close()

		_, err = postgresstore.NewLibraryStoreFromPGXPool(connPool, options...)

		return err

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		defer closeQuietly(db)

		_, err := postgresstore.NewLibraryStoreFromSQLDB(db, options...)

		return err

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		defer closeQuietly(db)

		_, err := postgresstore.NewLibraryStoreFromSQLX(db, options...)

		return err

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}
}

// CleanUp empties the loans, members and books tables behind the wrapper.
// One statement truncates all three, so the foreign keys from loans do not
// get in the way.
func CleanUp(t testing.TB, wrapper Wrapper) {
	const truncateStatement = "TRUNCATE TABLE loans, members, books RESTART IDENTITY"

	err := wrapper.execRaw(context.Background(), truncateStatement)
	assert.NoError(t, err, "error cleaning up the library tables")
}

// GetMemberVersionFromDB reads the optimistic concurrency version of a
// member row.
func GetMemberVersionFromDB(t testing.TB, wrapper Wrapper, memberID uuid.UUID) int64 {
	query := fmt.Sprintf(`SELECT version FROM members WHERE id = '%s'`, memberID.String())

	var version int64
	err := wrapper.scanRow(context.Background(), query, &version)
	assert.NoError(t, err, "error in arranging test data")

	return version
}

// GetAvailableCopiesFromDB reads the shelf count of a book row.
func GetAvailableCopiesFromDB(t testing.TB, wrapper Wrapper, bookID uuid.UUID) int {
	query := fmt.Sprintf(`SELECT available_copies FROM books WHERE id = '%s'`, bookID.String())

	var availableCopies int
	err := wrapper.scanRow(context.Background(), query, &availableCopies)
	assert.NoError(t, err, "error in arranging test data")

	return availableCopies
}

// CountOpenLoansFromDB counts the open loans of a member.
func CountOpenLoansFromDB(t testing.TB, wrapper Wrapper, memberID uuid.UUID) int {
	query := fmt.Sprintf(
		`SELECT count(*) FROM loans WHERE member_id = '%s' AND returned_on IS NULL`, memberID.String())

	var count int
	err := wrapper.scanRow(context.Background(), query, &count)
	assert.NoError(t, err, "error in arranging test data")

	return count
}

func adapterTypeFromEnv() string {
	return strings.ToLower(os.Getenv("ADAPTER_TYPE"))
}

func closeQuietly(db io.Closer) {
	_ = db.Close()
}
