package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/middleware"
	"github.com/pageza/designhub/backend/internal/service"
	"gorm.io/gorm"
)

// Dependencies are the services the HTTP layer is built from
type Dependencies struct {
	DB        *gorm.DB
	Auth      service.IAuthService
	Profile   service.IProfileService
	Feed      service.IFeedService
	Chat      service.IChatService
	Resources service.IResourceService
	Vacancies service.IVacancyService
	Portfolio service.IPortfolioService
	Settings  service.ISettingsService
	// ProfileRateLimiter guards PATCH /api/profile; nil disables it
	ProfileRateLimiter *middleware.RateLimiter
	Log                logger.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck(deps.DB))
	router.GET("/metrics", Metrics())

	api := router.Group("/api")

	NewAuthHandler(deps.Auth).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))

	NewProfileHandler(deps.Profile).RegisterRoutes(protected, deps.ProfileRateLimiter)
	NewPortfolioHandler(deps.Portfolio).RegisterRoutes(protected)
	NewSettingsHandler(deps.Settings).RegisterRoutes(protected)
	NewFeedHandler(deps.Feed).RegisterRoutes(protected)
	NewChatHandler(deps.Chat).RegisterRoutes(protected)
	NewResourceHandler(deps.Resources).RegisterRoutes(protected)
	NewVacancyHandler(deps.Vacancies).RegisterRoutes(protected)
}

// currentUser returns the authenticated caller, recording UNAUTHORIZED when absent
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(apperror.NewUnauthorized("Authentication required"))
	}
	return userID, ok
}

func invalidJSON(err error) error {
	return apperror.NewInvalidInput(apperror.CodeInvalidJSON, "Invalid JSON in request body", err)
}
