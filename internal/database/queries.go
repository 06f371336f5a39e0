package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/records"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the statements shared by DB and Tx.
type Queries struct {
	q     querier
	clock clock.Clock
	ids   clock.IDGen
}

// now returns the current time in Unix milliseconds, the unit of every
// timestamp column.
func (s *Queries) now() int64 {
	return s.clock.Now().UnixMilli()
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// notFound converts sql.ErrNoRows into records.ErrNotFound with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &records.Error{Kind: records.ErrNotFound, Msg: msg}
	}
	return err
}
