package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for database operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrSchemaMissing indicates a query hit a relation that does not exist.
	// Usually means InitSchema was never run against this database.
	ErrSchemaMissing = errors.New("catalog schema missing")

	// ErrUnavailable indicates the database could not be reached.
	ErrUnavailable = errors.New("database unavailable")
)

// Postgres error codes this package branches on.
const (
	pgUndefinedTable  = "42P01"
	pgConnectionClass = "08"
)

// wrapQueryError inspects a pgx error and wraps it with the matching sentinel
// so callers can branch with errors.Is. Unknown errors pass through unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUndefinedTable {
			return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionClass {
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		}
	}

	return err
}
