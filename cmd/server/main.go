package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/financeflow/financeflow/internal/api"
	"github.com/financeflow/financeflow/internal/auth"
	"github.com/financeflow/financeflow/internal/cache"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/integration/stripe"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/repository"
	"github.com/financeflow/financeflow/internal/sentry"
	"github.com/financeflow/financeflow/internal/service"
	"github.com/financeflow/financeflow/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"go.uber.org/fx"
)

// @title FinanceFlow API
// @version 1.0
// @description Personal finance ledger, dashboard and subscription billing
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
	// the front end reads amounts as json numbers
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	var opts []fx.Option

	// Monitoring
	opts = append(opts, sentry.Module())

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Ledger store
			postgres.NewDB,
			provideDBClient,

			// Auth gate
			auth.NewProvider,

			// Payment provider
			providePaymentProvider,

			// Repositories
			repository.NewUserRepository,
			repository.NewAuthRepository,
			repository.NewExpenseRepository,
			repository.NewClientRepository,
			repository.NewInvoiceRepository,
			repository.NewProcessedEventRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewSnapshotCacheFromConfig,
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewExpenseService,
			service.NewClientService,
			service.NewInvoiceService,
			service.NewDashboardService,
			service.NewCheckoutService,
			service.NewReconcilerService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			api.NewHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			migrateDatabase,
			startAPIServer,
			startPruneWorker,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func providePaymentProvider(cfg *config.Configuration, log *logger.Logger, sentry *sentry.Service) payment.Provider {
	return stripe.NewClient(cfg, log, sentry)
}

func migrateDatabase(lc fx.Lifecycle, db *postgres.DB, cfg *config.Configuration, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Postgres.AutoMigrate {
				return nil
			}
			log.Info("Running database migrations...")
			return db.Migrate(ctx)
		},
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

// startPruneWorker forgets processed webhook ids older than webhook.retention
// every webhook.prune_interval
func startPruneWorker(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	reconciler service.ReconcilerService,
	sentrySvc *sentry.Service,
	log *logger.Logger,
) {
	interval := cfg.Webhook.PruneInterval
	if interval <= 0 {
		log.Info("processed event pruning is disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg conc.WaitGroup

	prune := func() {
		span, ctx := sentrySvc.StartTransaction(ctx, "webhook.prune")
		if span != nil {
			defer span.Finish()
		}
		if _, err := reconciler.PruneProcessedEvents(ctx); err != nil {
			log.Errorw("failed to prune processed webhook events", "error", err)
			sentrySvc.CaptureException(err)
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Go(func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				prune()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						prune()
					}
				}
			})
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}
