package middleware

import (
	"time"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/types"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware captures panics and traces requests when Sentry is enabled
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryUserMiddleware tags the request scope with the authenticated owner
func SentryUserMiddleware(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.Scope().SetTag("owner_id", types.GetUserID(c.Request.Context()))
		hub.Scope().SetTag("request_id", types.GetRequestID(c.Request.Context()))
	}
	c.Next()
}
