package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gately/internal/infrastructure/ratelimit"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

// CheckoutRateLimit throttles checkout attempts per client IP. When the
// limiter backend fails the request proceeds; checkout availability wins
// over throttling precision.
func CheckoutRateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many checkout attempts, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
