package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"handyconnect/internal/pkg/response"
)

// RequestLogger logs every request with zap and recovers from panics,
// turning them into a generic 500 so handlers never leak internals.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic recovered",
					zap.Any("panic", recovered),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if uid := c.GetString("user_id"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
