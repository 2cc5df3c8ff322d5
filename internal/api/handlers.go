package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// HealthCheck reports healthy only while the database answers a ping
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "not configured"})
			return
		}
		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
	}
}

// Metrics exposes the Prometheus default registry
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
