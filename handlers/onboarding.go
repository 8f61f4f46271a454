package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OnboardingHandler struct {
	Service *onboarding.Service
}

func NewOnboardingHandler(svc *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

func writeOnboardingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, onboarding.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, onboarding.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("onboarding request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update onboarding"})
	}
}

// StartOnboardingHandler handles POST /api/onboarding.
func (h *OnboardingHandler) StartOnboardingHandler(c *gin.Context) {
	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Service.Start(c.Request.Context(), role)
	if err != nil {
		writeOnboardingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetOnboardingHandler handles GET /api/onboarding/:sessionID.
func (h *OnboardingHandler) GetOnboardingHandler(c *gin.Context) {
	res, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeOnboardingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// OnboardingActionHandler handles POST /api/onboarding/:sessionID/:action.
func (h *OnboardingHandler) OnboardingActionHandler(c *gin.Context) {
	action := onboarding.Action(c.Param("action"))
	res, err := h.Service.Apply(c.Request.Context(), c.Param("sessionID"), action)
	if err != nil {
		writeOnboardingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
