package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reminders/internal/adapter/http/helper"
	"reminders/pkg/logger"
)

// RecoveryMiddleware answers a panicking handler with the JSON error
// envelope instead of an empty 500.
func RecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic while handling request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprint(recovered)),
		)

		helper.AbortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	})
}
