package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/financeflow/financeflow/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Stripe     StripeConfig
	Dashboard  DashboardConfig
	Webhook    WebhookConfig
	Cache      CacheConfig
	CORS       CORSConfig `mapstructure:"cors"`
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local production"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Driver   types.DatabaseDriver `validate:"required,oneof=postgres sqlite"`
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the database file used by the sqlite driver, ":memory:" for an ephemeral store
	Path            string
	MaxOpenConns    int
	AutoMigrate     bool `mapstructure:"auto_migrate"`
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	Secret   string        `validate:"required"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// RateLimit is the number of login/register attempts allowed per client per minute
	RateLimit int `mapstructure:"rate_limit"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
	// Plans maps a plan id accepted by the checkout endpoint to a provider price id
	Plans      map[string]string
	Timeout    time.Duration
	MaxRetries uint64 `mapstructure:"max_retries"`
}

type DashboardConfig struct {
	// CacheTTL bounds how stale a cached snapshot may be before it is recomputed
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// FallbackTTL is how long the last good snapshot is kept for store outages
	FallbackTTL  time.Duration `mapstructure:"fallback_ttl"`
	StoreTimeout time.Duration `mapstructure:"store_timeout"`
}

type WebhookConfig struct {
	// Retention is how long processed event ids are remembered for deduplication
	Retention     time.Duration
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type CacheConfig struct {
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real environment variables always win
	_ = godotenv.Load()

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/financeflow")

	// Set up environment variables support
	v.SetEnvPrefix("FINANCEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()

	v.SetDefault("deployment.mode", defaults.Deployment.Mode)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("postgres.driver", defaults.Postgres.Driver)
	v.SetDefault("postgres.host", defaults.Postgres.Host)
	v.SetDefault("postgres.port", defaults.Postgres.Port)
	v.SetDefault("postgres.sslmode", defaults.Postgres.SSLMode)
	v.SetDefault("postgres.path", defaults.Postgres.Path)
	v.SetDefault("postgres.maxopenconns", defaults.Postgres.MaxOpenConns)
	v.SetDefault("postgres.auto_migrate", defaults.Postgres.AutoMigrate)
	v.SetDefault("postgres.connmaxlifetime", defaults.Postgres.ConnMaxLifetime)
	v.SetDefault("auth.token_ttl", defaults.Auth.TokenTTL)
	v.SetDefault("auth.rate_limit", defaults.Auth.RateLimit)
	v.SetDefault("stripe.timeout", defaults.Stripe.Timeout)
	v.SetDefault("stripe.max_retries", defaults.Stripe.MaxRetries)
	v.SetDefault("stripe.success_url", defaults.Stripe.SuccessURL)
	v.SetDefault("stripe.cancel_url", defaults.Stripe.CancelURL)
	v.SetDefault("stripe.plans", defaults.Stripe.Plans)
	v.SetDefault("dashboard.cache_ttl", defaults.Dashboard.CacheTTL)
	v.SetDefault("dashboard.fallback_ttl", defaults.Dashboard.FallbackTTL)
	v.SetDefault("dashboard.store_timeout", defaults.Dashboard.StoreTimeout)
	v.SetDefault("webhook.retention", defaults.Webhook.Retention)
	v.SetDefault("webhook.prune_interval", defaults.Webhook.PruneInterval)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cors.allowed_origins", defaults.CORS.AllowedOrigins)
	v.SetDefault("sentry.enabled", defaults.Sentry.Enabled)
	v.SetDefault("sentry.sample_rate", defaults.Sentry.SampleRate)

	// AutomaticEnv only overrides keys viper already knows about
	for _, key := range []string{
		"postgres.user",
		"postgres.password",
		"postgres.dbname",
		"auth.secret",
		"stripe.secret_key",
		"stripe.webhook_secret",
		"sentry.dsn",
		"sentry.environment",
	} {
		v.SetDefault(key, "")
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// IsProduction reports whether internal details must be hidden from API responses
func (c Configuration) IsProduction() bool {
	return c.Deployment.Mode == types.ModeProduction
}

// HasStripe reports whether a payment provider is configured
func (c StripeConfig) HasStripe() bool {
	return c.SecretKey != ""
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, tests or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":4000"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Driver:       types.DatabaseDriverSQLite,
			Host:         "localhost",
			Port:         5432,
			SSLMode:      "disable",
			Path:         "financeflow.db",
			MaxOpenConns: 10,
			AutoMigrate:  true,
		},
		Auth: AuthConfig{
			TokenTTL:  7 * 24 * time.Hour,
			RateLimit: 20,
		},
		Stripe: StripeConfig{
			SuccessURL: "https://financeflow.skillsoul.store/settings-checkout.html?status=success",
			CancelURL:  "https://financeflow.skillsoul.store/settings-checkout.html?status=cancel",
			Plans: map[string]string{
				"starter":      "price_1SbZFqFj4r8OeJwWBlvD7LFZ",
				"professional": "price_1SbZHFFj4r8OeJwWnKSUaDiu",
				"enterprise":   "price_1SbZHlFj4r8OeJwWRWXPpTUu",
			},
			Timeout:    10 * time.Second,
			MaxRetries: 3,
		},
		Dashboard: DashboardConfig{
			CacheTTL:     5 * time.Minute,
			FallbackTTL:  24 * time.Hour,
			StoreTimeout: 3 * time.Second,
		},
		Webhook: WebhookConfig{
			Retention:     30 * 24 * time.Hour,
			PruneInterval: time.Hour,
		},
		Cache:  CacheConfig{Enabled: true},
		Sentry: SentryConfig{SampleRate: 1.0},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"https://financeflow.skillsoul.store",
				"http://localhost:5500",
			},
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	if c.Driver == types.DatabaseDriverSQLite {
		return c.Path
	}
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
