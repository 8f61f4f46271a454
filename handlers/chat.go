package handlers

import (
	"errors"
	"net/http"

	"medibook/middleware"
	"medibook/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Service *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{Service: svc}
}

func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
	}
}

// ListChatsHandler handles GET /api/chats?q=.
func (h *ChatHandler) ListChatsHandler(c *gin.Context) {
	view, err := h.Service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// OnlineUsersHandler handles GET /api/chats/online.
func (h *ChatHandler) OnlineUsersHandler(c *gin.Context) {
	users, err := h.Service.OnlineUsers(c.Request.Context())
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetThreadHandler handles GET /api/chats/:id.
func (h *ChatHandler) GetThreadHandler(c *gin.Context) {
	thread, err := h.Service.Thread(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// SendMessageHandler handles POST /api/chats/:id/messages.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	msg, err := h.Service.Send(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), input.Content)
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg, "saved": false})
}
