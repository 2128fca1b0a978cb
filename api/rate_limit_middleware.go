package api

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/ericfitz/userd/internal/slogging"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware creates a middleware that enforces per-client admission
// control. The client key is the request's network address; admission is
// evaluated strictly before any handler touches the store, so a rejected
// request has no side effects.
func RateLimitMiddleware(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := slogging.Get().WithContext(c)

		// Skip rate limiting if no rate limiter is configured
		if limiter == nil {
			c.Next()
			return
		}

		// Liveness and metrics endpoints are not resource operations
		if isExemptEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := c.ClientIP()
		dec, err := limiter.Check(c.Request.Context(), key)
		if err != nil {
			logger.Error("Rate limit check failed for client %s: %v", key, err)
			// On error, allow the request (fail open)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", dec.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", dec.Remaining))

		if !dec.Allowed {
			admissionRejected.Inc()
			retryAfter := int(dec.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))

			c.JSON(http.StatusTooManyRequests, Error{
				Error:            "rate_limit_exceeded",
				ErrorDescription: "Rate limit exceeded. Please retry after the specified time.",
			})
			c.Abort()
			return
		}

		admissionAdmitted.Inc()
		c.Next()
	}
}

// isExemptEndpoint checks if the path bypasses admission control
func isExemptEndpoint(path string) bool {
	exempt := []string{
		"/",
		"/metrics",
	}
	return slices.Contains(exempt, path)
}
