package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/navigation"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NavigationHandler struct {
	Service *navigation.Service
}

func NewNavigationHandler(svc *navigation.Service) *NavigationHandler {
	return &NavigationHandler{Service: svc}
}

// sessionID returns the client's screen session, issuing a new one when the
// header is absent. The id is echoed back in the same header.
func sessionID(c *gin.Context) string {
	id := c.GetHeader(utils.SessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(utils.SessionHeader, id)
	return id
}

func actorOf(c *gin.Context) navigation.Actor {
	return navigation.Actor{
		Authenticated: middleware.CurrentUserID(c) != "",
		Role:          middleware.CurrentRole(c),
	}
}

func (h *NavigationHandler) respond(c *gin.Context, state *navigation.State, err error) {
	if err != nil {
		getLogger(c).Error("navigation request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update navigation"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetNavigationHandler handles GET /api/navigation.
func (h *NavigationHandler) GetNavigationHandler(c *gin.Context) {
	state, err := h.Service.Current(c.Request.Context(), sessionID(c), actorOf(c))
	h.respond(c, state, err)
}

// SelectTabHandler handles POST /api/navigation/select.
func (h *NavigationHandler) SelectTabHandler(c *gin.Context) {
	var input struct {
		Tab string `json:"tab" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab is required"})
		return
	}
	tab, err := models.ParseTab(input.Tab)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := h.Service.Select(c.Request.Context(), sessionID(c), tab, actorOf(c))
	h.respond(c, state, err)
}

// SyncLocationHandler handles POST /api/navigation/sync.
func (h *NavigationHandler) SyncLocationHandler(c *gin.Context) {
	var input struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	state, err := h.Service.Sync(c.Request.Context(), sessionID(c), input.Path, actorOf(c))
	h.respond(c, state, err)
}
