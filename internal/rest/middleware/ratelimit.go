package middleware

import (
	"sync"
	"time"

	"github.com/financeflow/financeflow/internal/config"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdle is how long a client's limiter is kept after its last request
const limiterIdle = 10 * time.Minute

// RateLimitMiddleware throttles credential endpoints per client ip with a token
// bucket refilled at auth.rate_limit attempts per minute
func RateLimitMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	perMinute := cfg.Auth.RateLimit
	if perMinute <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var (
		mu       sync.Mutex
		limiters = goCache.New(limiterIdle, limiterIdle)
		every    = rate.Every(time.Minute / time.Duration(perMinute))
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters.Get(key); ok {
			limiters.SetDefault(key, l)
			return l.(*rate.Limiter)
		}
		l := rate.NewLimiter(every, perMinute)
		limiters.SetDefault(key, l)
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.Error(ierr.NewError("rate limit exceeded").
				WithHint("Too many attempts, please try again later").
				Mark(ierr.ErrRateLimited))
			c.Abort()
			return
		}
		c.Next()
	}
}
