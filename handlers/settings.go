package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultSettings is what every account starts with.
var DefaultSettings = models.Settings{
	PushNotifications:    true,
	EmailNotifications:   true,
	AppointmentReminders: true,
	Language:             "en",
}

type SettingsHandler struct {
	Defaults models.Settings
}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{Defaults: DefaultSettings}
}

// GetSettingsHandler handles GET /api/settings.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Defaults)
}

// UpdateSettingsHandler handles PUT /api/settings. Changes are logged, not saved.
func (h *SettingsHandler) UpdateSettingsHandler(c *gin.Context) {
	settings := h.Defaults
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	getLogger(c).Info("settings update requested",
		zap.String("userID", middleware.CurrentUserID(c)),
		zap.Any("settings", settings),
	)
	c.JSON(http.StatusOK, gin.H{"settings": settings, "saved": false})
}
