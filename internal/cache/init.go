package cache

import (
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/logger"
)

// Initialize builds the process wide cache
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache system", "enabled", cfg.Cache.Enabled)
	return NewInMemoryCache(cfg)
}
