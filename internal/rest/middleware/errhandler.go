package middleware

import (
	"github.com/financeflow/financeflow/internal/config"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the request. The raw error
// text is only exposed outside production.
func ErrorHandler(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= 500 {
			logger.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, ierr.NewErrorResponse(err, !cfg.IsProduction()))
	}
}
