package postgresstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const logMsgEnsureSchemaFailed = "failed to ensure database schema"

// EnsureSchema creates the books, members and loans tables and their indexes
// if they do not exist yet. Every statement is idempotent, so callers can run
// this on each startup. The configured table prefix is applied to table and
// index names, keeping multiple deployments apart in one database.
//
// The tables carry the same invariants the core enforces, as a second line of
// defense: copy counts stay within bounds, a loan can never be returned before
// it was checked out, and ISBN and email uniqueness guard the idempotent
// insert paths.
func (ls LibraryStore) EnsureSchema(ctx context.Context) error {
	for _, sqlStatement := range ls.schemaStatements() {
		if _, execErr := ls.db.Exec(ctx, sqlStatement); execErr != nil {
			ls.logError(ctx, logMsgEnsureSchemaFailed, execErr, logAttrQuery, sqlStatement)

			return errors.Join(librarystore.ErrEnsuringSchemaFailed, execErr)
		}
	}

	return nil
}

func (ls LibraryStore) schemaStatements() []string {
	books := ls.booksTable()
	members := ls.membersTable()
	loans := ls.loansTable()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			title text NOT NULL,
			author text NOT NULL,
			isbn text NOT NULL UNIQUE,
			genre text NOT NULL DEFAULT '',
			publisher text NOT NULL DEFAULT '',
			published_on date,
			description text NOT NULL DEFAULT '',
			total_copies integer NOT NULL CHECK (total_copies >= 1),
			available_copies integer NOT NULL CHECK (available_copies >= 0),
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			CHECK (available_copies <= total_copies)
		)`, books),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			name text NOT NULL,
			email text NOT NULL UNIQUE,
			phone text NOT NULL DEFAULT '',
			membership_type text NOT NULL DEFAULT 'REGULAR',
			joined_on date NOT NULL,
			borrowing_limit integer NOT NULL CHECK (borrowing_limit >= 1),
			is_active boolean NOT NULL DEFAULT true,
			version bigint NOT NULL DEFAULT 0,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`, members),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			book_id uuid NOT NULL REFERENCES %s (id),
			member_id uuid NOT NULL REFERENCES %s (id),
			checked_out_on date NOT NULL,
			due_on date NOT NULL,
			returned_on date,
			return_condition text NOT NULL DEFAULT '',
			notes text NOT NULL DEFAULT '',
			fine_paid boolean NOT NULL DEFAULT false,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			CHECK (due_on >= checked_out_on),
			CHECK (returned_on IS NULL OR returned_on >= checked_out_on)
		)`, loans, books, members),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_by_member_idx ON %s (member_id)`, loans, loans),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_by_book_idx ON %s (book_id)`, loans, loans),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_open_by_due_date_idx ON %s (due_on) WHERE returned_on IS NULL`,
			loans, loans),
	}
}
