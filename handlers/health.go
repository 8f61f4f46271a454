package handlers

import (
	"net/http"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last backing-service snapshot.
func HealthHandler(c *gin.Context) {
	s := utils.GetHealthStatus()
	status, code := "ok", http.StatusOK
	if !s.Healthy() {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm MediBook", "services": s})
}
