package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/middleware"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes expects router to already require a session. A nil limiter leaves
// PATCH unlimited; otherwise GET reports the remaining PATCH budget.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	profile := router.Group("/profile")
	if limiter == nil {
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
	} else {
		profile.GET("", limiter.QuotaHeaders(), h.GetProfile)
		profile.PATCH("", limiter.RateLimitMiddleware(), h.UpdateProfile)
	}
	router.DELETE("/account", h.DeleteAccount)
}

// GetProfile returns the caller's full profile record
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update; see types.UpdatableProfileFields
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req, err := types.DecodeUpdateProfileRequest(c.Request.Body)
	if err != nil {
		_ = c.Error(invalidJSON(err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's account and everything they own
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
