package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-Id"
	ctxRequestID    = "request_id"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(ctxRequestID, id)

		c.Next()
	}
}

func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// RequestLogger writes one line per request. Errors attached with c.Error
// are logged with it.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", RequestIDFromContext(c)),
		}
		if email, ok := EmailFromContext(c); ok {
			fields = append(fields, zap.String("email", email))
		}

		switch {
		case len(c.Errors) > 0:
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
			log.Error("http_request", fields...)
		case status >= 500:
			log.Error("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}
