package postgres

import (
	"context"
	"strings"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
)

// schema is written once for both dialects. {{money}}, {{json}} and {{ts}}
// are replaced per driver; sqlite keeps money as text so decimals round-trip exactly.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(50) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		role VARCHAR(20) NOT NULL,
		plan VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auths (
		user_id VARCHAR(50) PRIMARY KEY,
		provider VARCHAR(20) NOT NULL,
		token TEXT NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id VARCHAR(50) PRIMARY KEY,
		owner_id VARCHAR(50) NOT NULL,
		amount {{money}} NOT NULL,
		description TEXT NOT NULL,
		date {{ts}} NOT NULL,
		client VARCHAR(255) NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL DEFAULT '',
		tax_deductible BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_owner ON expenses (owner_id)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id VARCHAR(50) PRIMARY KEY,
		owner_id VARCHAR(50) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		revenue {{money}} NOT NULL,
		balance {{money}} NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients (owner_id)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id VARCHAR(50) PRIMARY KEY,
		owner_id VARCHAR(50) NOT NULL,
		number VARCHAR(20) NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		amount {{money}} NOT NULL,
		status VARCHAR(20) NOT NULL,
		due_date {{ts}} NOT NULL,
		paid_at {{ts}},
		line_items {{json}} NOT NULL,
		provider_ref VARCHAR(255) UNIQUE,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_owner ON invoices (owner_id)`,
	`CREATE TABLE IF NOT EXISTS processed_webhook_events (
		event_id VARCHAR(255) PRIMARY KEY,
		event_type VARCHAR(100) NOT NULL,
		owner_id VARCHAR(50) NOT NULL DEFAULT '',
		outcome VARCHAR(20) NOT NULL,
		processed_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_processed_webhook_events_processed_at ON processed_webhook_events (processed_at)`,
}

// Schema returns the DDL statements for driver
func Schema(driver types.DatabaseDriver) []string {
	replacer := strings.NewReplacer(
		"{{money}}", "NUMERIC(20,4)",
		"{{json}}", "JSONB",
		"{{ts}}", "TIMESTAMPTZ",
	)
	if driver == types.DatabaseDriverSQLite {
		replacer = strings.NewReplacer(
			"{{money}}", "TEXT",
			"{{json}}", "TEXT",
			"{{ts}}", "DATETIME",
		)
	}

	statements := make([]string, 0, len(schema))
	for _, stmt := range schema {
		statements = append(statements, replacer.Replace(stmt))
	}
	return statements
}

// Migrate creates every table that does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		q := db.GetQuerier(ctx)
		for _, stmt := range Schema(db.driver) {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to migrate database schema").
					Mark(ierr.ErrStoreUnavailable)
			}
		}
		db.logger.Infow("database schema is up to date", "driver", db.driver)
		return nil
	})
}
