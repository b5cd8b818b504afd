package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/financeflow/financeflow/internal/auth"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Configuration {
	gin.SetMode(gin.TestMode)
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "middleware-test-secret"
	return cfg
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, ierr.ErrorResponse) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body ierr.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.RateLimit = 2

	r := gin.New()
	r.Use(ErrorHandler(cfg, logger.NewNopLogger()))
	r.POST("/login", RateLimitMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w, _ := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w, body := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Too many attempts, please try again later", body.Error.Display)

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "198.51.100.7:4242"
	w, _ = serve(r, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateMiddleware(t *testing.T) {
	cfg := newTestConfig()
	provider := auth.NewProvider(cfg)

	r := gin.New()
	r.Use(ErrorHandler(cfg, logger.NewNopLogger()))
	r.GET("/me", AuthenticateMiddleware(provider, logger.NewNopLogger()), func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id": types.GetUserID(ctx),
			"role":    types.GetRole(ctx),
		})
	})

	u := user.NewUser("owner@example.com")
	token, err := provider.IssueToken(u)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(types.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.want, w.Code, w.Body.String())

			if tt.want == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, u.ID, body["user_id"])
				assert.Equal(t, string(types.UserRoleOwner), body["role"])
			}
		})
	}
}

func TestErrorHandlerHidesInternalErrorInProduction(t *testing.T) {
	newRouter := func(cfg *config.Configuration) *gin.Engine {
		r := gin.New()
		r.Use(ErrorHandler(cfg, logger.NewNopLogger()))
		r.GET("/invoice", func(c *gin.Context) {
			c.Error(ierr.NewError("invoice inv_1 missing from table").
				WithHint("Invoice not found").
				WithReportableDetails(map[string]any{"invoice_id": "inv_1"}).
				Mark(ierr.ErrNotFound))
		})
		return r
	}

	cfg := newTestConfig()
	w, body := serve(newRouter(cfg), httptest.NewRequest(http.MethodGet, "/invoice", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invoice not found", body.Error.Display)
	assert.Contains(t, body.Error.InternalError, "inv_1")
	assert.Equal(t, "inv_1", body.Error.Details["invoice_id"])

	cfg.Deployment.Mode = types.ModeProduction
	w, body = serve(newRouter(cfg), httptest.NewRequest(http.MethodGet, "/invoice", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, body.Error.InternalError)
	assert.Equal(t, "Invoice not found", body.Error.Display)
}
