package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/service"
)

type ResourceHandler struct {
	resourceService service.IResourceService
}

func NewResourceHandler(resourceService service.IResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) RegisterRoutes(router *gin.RouterGroup) {
	resources := router.Group("/resources")
	{
		resources.GET("", h.ListResources)
		resources.POST("/:id/download", h.Download)
	}
}

func (h *ResourceHandler) ListResources(c *gin.Context) {
	filters := &models.ResourceFilters{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}

	resources, err := h.resourceService.ListResources(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.NewNotFound(apperror.CodeResourceNotFound, "Resource not found"))
		return
	}

	resp, err := h.resourceService.Download(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
