package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/config"
	"github.com/pageza/designhub/backend/internal/api"
	"github.com/pageza/designhub/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies) *gin.Engine {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Error handling sits outermost so panics anywhere below are rendered as JSON
	router.Use(middleware.ErrorHandler(deps.Log))
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api.RegisterRoutes(router, deps)

	return router
}
