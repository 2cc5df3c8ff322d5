package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/types"
)

type PortfolioHandler struct {
	portfolioService service.IPortfolioService
}

func NewPortfolioHandler(portfolioService service.IPortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) RegisterRoutes(router *gin.RouterGroup) {
	portfolio := router.Group("/profile/portfolio")
	{
		portfolio.GET("", h.ListPortfolio)
		portfolio.PUT("", h.ReplacePortfolio)
	}
}

func (h *PortfolioHandler) ListPortfolio(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.portfolioService.ListPortfolio(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// ReplacePortfolio stores the submitted items as the caller's entire portfolio
func (h *PortfolioHandler) ReplacePortfolio(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ReplacePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(invalidJSON(err))
		return
	}

	items, err := h.portfolioService.ReplacePortfolio(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, items)
}
