package config

import (
	"testing"
	"time"

	"github.com/financeflow/financeflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigRequiresSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	require.Error(t, cfg.Validate())

	cfg.Auth.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "financeflow.db", cfg.Postgres.GetDSN())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.Secret = "s3cret"
	cfg.Postgres.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Driver:   types.DatabaseDriverPostgres,
		Host:     "db",
		Port:     5433,
		User:     "ff",
		Password: "pw",
		DBName:   "ledger",
		SSLMode:  "require",
	}
	assert.Equal(t, "user=ff password=pw dbname=ledger host=db port=5433 sslmode=require", cfg.GetDSN())
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("FINANCEFLOW_AUTH_SECRET", "from-env")
	t.Setenv("FINANCEFLOW_DEPLOYMENT_MODE", "production")
	t.Setenv("FINANCEFLOW_STRIPE_SECRET_KEY", "sk_test_env")
	t.Setenv("FINANCEFLOW_DASHBOARD_CACHE_TTL", "30s")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Stripe.HasStripe())
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Contains(t, cfg.Stripe.Plans, "professional")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5500")
}

func TestNewConfigFailsWithoutSecret(t *testing.T) {
	t.Setenv("FINANCEFLOW_AUTH_SECRET", "")

	_, err := NewConfig()
	assert.Error(t, err)
}
