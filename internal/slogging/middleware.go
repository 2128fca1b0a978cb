package slogging

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware returns a Gin middleware for logging requests using slog
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := Get().WithContext(c)

		// Store logger in context for handlers to use
		c.Set("logger", logger)

		logger.Debug("Request started: %s %s", c.Request.Method, c.Request.URL.Path)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		statusCode := c.Writer.Status()

		switch {
		case statusCode >= 500:
			logger.Error("Request completed: %s %s status=%d duration=%s", c.Request.Method, c.Request.URL.Path, statusCode, latency)
		case statusCode >= 400:
			logger.Warn("Request completed: %s %s status=%d duration=%s", c.Request.Method, c.Request.URL.Path, statusCode, latency)
		default:
			logger.Info("Request completed: %s %s status=%d duration=%s", c.Request.Method, c.Request.URL.Path, statusCode, latency)
		}
	}
}

// Recoverer creates middleware for recovering from panics using slog
func Recoverer() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := Get().WithContext(c)

				buf := make([]byte, 2048)
				n := runtime.Stack(buf, false)
				logger.Error("Panic recovered: %v\n%s", err, buf[:n])

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":             "server_error",
					"error_description": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
