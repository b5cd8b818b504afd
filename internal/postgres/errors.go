package postgres

import (
	"database/sql"
	"errors"
	"strings"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsUniqueViolation reports whether err is a unique constraint failure on either driver
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

// WrapError converts a driver error into a marked error. sql.ErrNoRows becomes
// ErrNotFound, unique violations ErrAlreadyExists and everything else ErrStoreUnavailable.
func WrapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	if IsUniqueViolation(err) {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			Mark(ierr.ErrAlreadyExists)
	}
	if ierr.IsStoreUnavailable(err) {
		return err
	}
	return ierr.WithError(err).
		WithHint("Ledger store is unavailable").
		Mark(ierr.ErrStoreUnavailable)
}
