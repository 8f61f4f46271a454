package handlers

import (
	"context"
	"errors"

	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger from the Gin context or falls back
// to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// clientGone reports whether err only means the caller stopped waiting.
func clientGone(err error) bool {
	return errors.Is(err, context.Canceled)
}
