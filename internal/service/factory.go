package service

import (
	"github.com/financeflow/financeflow/internal/cache"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/domain/user"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Sentry *sentry.Service

	// Repositories
	AuthRepo           auth.Repository
	UserRepo           user.Repository
	ExpenseRepo        expense.Repository
	ClientRepo         client.Repository
	InvoiceRepo        invoice.Repository
	ProcessedEventRepo payment.ProcessedEventRepository

	// Snapshot cache shared by the aggregator and the reconciler
	Snapshots *SnapshotCache

	// Payment provider
	Provider payment.Provider
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sentry *sentry.Service,
	authRepo auth.Repository,
	userRepo user.Repository,
	expenseRepo expense.Repository,
	clientRepo client.Repository,
	invoiceRepo invoice.Repository,
	processedEventRepo payment.ProcessedEventRepository,
	snapshots *SnapshotCache,
	provider payment.Provider,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		DB:                 db,
		Sentry:             sentry,
		AuthRepo:           authRepo,
		UserRepo:           userRepo,
		ExpenseRepo:        expenseRepo,
		ClientRepo:         clientRepo,
		InvoiceRepo:        invoiceRepo,
		ProcessedEventRepo: processedEventRepo,
		Snapshots:          snapshots,
		Provider:           provider,
	}
}

// NewSnapshotCacheFromConfig wires the snapshot cache to the shared cache backend
func NewSnapshotCacheFromConfig(c cache.Cache, cfg *config.Configuration, logger *logger.Logger) *SnapshotCache {
	return NewSnapshotCache(c, cfg.Dashboard.CacheTTL, cfg.Dashboard.FallbackTTL, logger)
}
