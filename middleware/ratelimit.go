package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"port-inspection-analytics/internal/config"
	"port-inspection-analytics/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP with in-process token
// buckets. There is no shared backend here; the dashboard keeps no state
// beyond its own process, so per-instance limiting is enough.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	limit := rate.Limit(float64(cfg.RateLimitReqs) / float64(cfg.RateLimitWindow))
	burst := cfg.RateLimitReqs

	var mu sync.Mutex
	visitors := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		// Skip rate limiting for health checks
		if c.FullPath() == "/health" {
			c.Next()
			return
		}

		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := visitors[ip]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			visitors[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RateLimitReqs))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(
				time.Now().Add(time.Duration(cfg.RateLimitWindow)*time.Second).Unix(), 10))

			utils.RespondWithError(c, http.StatusTooManyRequests,
				"rate_limit_exceeded",
				"Too many requests. Please try again later.",
				gin.H{
					"retry_after": cfg.RateLimitWindow,
					"limit":       cfg.RateLimitReqs,
				})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RateLimitReqs))
		c.Next()
	}
}
