package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/logger"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request once the response is written
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID, ok := UserID(c); ok {
			fields = append(fields, zap.String("user_id", userID.String()))
		}

		if c.Writer.Status() >= 500 {
			log.Warn("Request completed with server error", fields...)
			return
		}
		log.Info("Request completed", fields...)
	}
}
