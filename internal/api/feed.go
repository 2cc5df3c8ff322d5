package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/types"
)

type FeedHandler struct {
	feedService service.IFeedService
}

func NewFeedHandler(feedService service.IFeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	feed := router.Group("/feed")
	{
		feed.GET("", h.ListPosts)
		feed.POST("", h.CreatePost)
		feed.POST("/:id/like", h.ToggleLike)
	}
}

func (h *FeedHandler) ListPosts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.feedService.ListPosts(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(invalidJSON(err))
		return
	}

	post, err := h.feedService.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *FeedHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.NewNotFound(apperror.CodePostNotFound, "Post not found"))
		return
	}

	resp, err := h.feedService.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
