package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/sentry"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("Failed to load config", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalw("Failed to create logger", "error", err)
	}

	if *dryRun {
		log.Infow("Dry run mode - printing migration SQL without executing", "driver", cfg.Postgres.Driver)
		for _, stmt := range postgres.Schema(cfg.Postgres.Driver) {
			fmt.Printf("%s;\n\n", stmt)
		}
		return
	}

	log.Infow("Connecting to database", "driver", cfg.Postgres.Driver, "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, log, sentry.NewSentryService(cfg, log))
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("Running database migrations...")
	if err := db.Migrate(ctx); err != nil {
		log.Fatalw("Failed to create schema resources", "error", err)
	}

	fmt.Println("Migration process completed")
}
