package postgres

import (
	"context"
	"database/sql"

	"github.com/financeflow/financeflow/internal/config"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/sentry"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	driver types.DatabaseDriver
	logger *logger.Logger
	sentry *sentry.Service
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	Rebind(query string) string
}

// IClient is the transactional surface services depend on
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ IClient = (*DB)(nil)

// NewDB opens the ledger store with the configured driver
func NewDB(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) (*DB, error) {
	driverName := string(cfg.Postgres.Driver)
	db, err := sqlx.Connect(driverName, cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to connect to %s", driverName).
			Mark(ierr.ErrStoreUnavailable)
	}

	switch cfg.Postgres.Driver {
	case types.DatabaseDriverSQLite:
		// a sqlite database, and every :memory: database in particular, lives
		// behind exactly one connection
		db.SetMaxOpenConns(1)
	default:
		if cfg.Postgres.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		}
		if cfg.Postgres.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	}

	logger.Infow("connected to ledger store", "driver", driverName)
	return &DB{DB: db, driver: cfg.Postgres.Driver, logger: logger, sentry: sentry}, nil
}

// Driver returns the sql dialect in use
func (db *DB) Driver() types.DatabaseDriver {
	return db.driver
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}
