package types

type RunMode string

const (
	// ModeLocal runs the API server with debug friendly defaults
	ModeLocal RunMode = "local"
	// ModeProduction runs the API server in release mode; internal error details are never rendered
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseDriver selects the database/sql driver behind the ledger store
type DatabaseDriver string

const (
	DatabaseDriverPostgres DatabaseDriver = "postgres"
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
)
