package slogging

import (
	"log/slog"

	"github.com/google/uuid"
)

// GinContextLike is the minimal request-context surface the logger needs, so
// this package can be tested without a full gin engine.
type GinContextLike interface {
	Get(key any) (any, bool)
	GetHeader(key string) string
	ClientIP() string
}

// GetContextLogger retrieves the request-scoped logger from the context, or
// falls back to the global logger.
func GetContextLogger(c GinContextLike) SimpleLogger {
	if v, exists := c.Get("logger"); exists {
		if logger, ok := v.(SimpleLogger); ok {
			return logger
		}
	}
	return Get()
}

// WithContext returns a context-aware logger that includes request information
func (l *Logger) WithContext(c GinContextLike) *ContextLogger {
	// Get or generate request ID
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		if setter, ok := c.(interface{ Header(string, string) }); ok {
			setter.Header("X-Request-ID", requestID)
		}
	}

	contextLogger := l.slogger.With(
		slog.String("request_id", requestID),
		slog.String("client_ip", c.ClientIP()),
	)

	return &ContextLogger{
		logger:    l,
		slogger:   contextLogger,
		requestID: requestID,
		clientIP:  c.ClientIP(),
	}
}

// ContextLogger adds request context to log messages
type ContextLogger struct {
	logger    *Logger
	slogger   *slog.Logger
	requestID string
	clientIP  string
}

// RequestID returns the request id attached to this logger.
func (cl *ContextLogger) RequestID() string {
	return cl.requestID
}

// Debug logs a debug-level message with request context
func (cl *ContextLogger) Debug(format string, args ...any) {
	if cl.logger.level > LogLevelDebug {
		return
	}
	cl.slogger.Debug(formatMessage(format, args...))
}

// Info logs an info-level message with request context
func (cl *ContextLogger) Info(format string, args ...any) {
	if cl.logger.level > LogLevelInfo {
		return
	}
	cl.slogger.Info(formatMessage(format, args...))
}

// Warn logs a warning-level message with request context
func (cl *ContextLogger) Warn(format string, args ...any) {
	if cl.logger.level > LogLevelWarn {
		return
	}
	cl.slogger.Warn(formatMessage(format, args...))
}

// Error logs an error-level message with request context
func (cl *ContextLogger) Error(format string, args ...any) {
	if cl.logger.level > LogLevelError {
		return
	}
	cl.slogger.Error(formatMessage(format, args...))
}
