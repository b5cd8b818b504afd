package middleware

import (
	"strings"

	"github.com/financeflow/financeflow/internal/auth"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware resolves the Bearer token in the Authorization header
// to an owner and sets the user id and role in the request context. The owner
// id is never taken from request input.
func AuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header", "Access token required")
			return
		}

		// Check if the authorization header is in the correct format
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortUnauthorized(c, "malformed authorization header", "Access token required")
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			logger.Debugw("rejected bearer token", "error", err)
			c.Error(ierr.WithError(err).
				WithHint("Invalid or expired token").
				Mark(ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" {
			abortUnauthorized(c, "token carries no user", "Invalid or expired token")
			return
		}

		ctx := types.SetUserID(c.Request.Context(), claims.UserID)
		ctx = types.SetRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg, hint string) {
	c.Error(ierr.NewError(msg).
		WithHint(hint).
		Mark(ierr.ErrUnauthorized))
	c.Abort()
}
