package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey ContextKey = "request_id"
	// LoggerKey is the context key for the request-scoped logger.
	LoggerKey ContextKey = "logger"

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns every request an ID, taken from the X-Request-ID header when
// present, echoes it back, and logs the request once it completes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		logger := slog.Default().With("request_id", requestID)
		c.Set(string(RequestIDKey), requestID)
		c.Set(string(LoggerKey), logger)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.InfoContext(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// GetRequestIDFromContext extracts the request ID from the Gin context.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	requestID, exists := c.Get(string(RequestIDKey))
	if !exists {
		return "", false
	}
	id, ok := requestID.(string)
	return id, ok
}

// LoggerFromContext returns the request-scoped logger, or the default logger.
func LoggerFromContext(c *gin.Context) *slog.Logger {
	if logger, exists := c.Get(string(LoggerKey)); exists {
		if l, ok := logger.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
