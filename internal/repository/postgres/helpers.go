package postgres

import (
	"database/sql"

	ierr "github.com/financeflow/financeflow/internal/errors"
)

// requireAffected turns an owner scoped write that matched nothing into a
// not found error. A record owned by someone else is reported the same way.
func requireAffected(result sql.Result, entity string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Ledger store is unavailable").
			Mark(ierr.ErrStoreUnavailable)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
