package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/service"
	"github.com/pageza/designhub/backend/internal/types"
)

type ChatHandler struct {
	chatService service.IChatService
}

func NewChatHandler(chatService service.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.GET("/contacts", h.ListContacts)
		chat.GET("/:userId/messages", h.ListMessages)
		chat.POST("/:userId/messages", h.SendMessage)
	}
}

func (h *ChatHandler) ListContacts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	contacts, err := h.chatService.ListContacts(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	otherID, ok := otherUserParam(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), userID, otherID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	otherID, ok := otherUserParam(c)
	if !ok {
		return
	}

	var req types.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(invalidJSON(err))
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), userID, otherID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func otherUserParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		_ = c.Error(apperror.NewNotFound(apperror.CodeUserNotFound, "User not found"))
		return uuid.Nil, false
	}
	return id, true
}
