package middleware

import (
	"net/http"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSMiddleware echoes the request origin back when it is one of the
// configured front-end origins
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	allowed := lo.SliceToMap(cfg.CORS.AllowedOrigins, func(origin string) (string, struct{}) {
		return origin, struct{}{}
	})
	_, allowAll := allowed["*"]

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; origin != "" && (ok || allowAll) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
