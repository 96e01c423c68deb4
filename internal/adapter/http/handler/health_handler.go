package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reminders/internal/core/model/response"
	"reminders/internal/core/port"
	"reminders/pkg/logger"
)

type HealthHandler struct {
	store   port.Pinger
	baseURL string
	logger  *logger.Logger
}

// NewHealthHandler reports the store as unchecked when it cannot be pinged.
func NewHealthHandler(store port.Pinger, baseURL string, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.NewNop()
	}

	return &HealthHandler{store: store, baseURL: baseURL, logger: log}
}

func (h *HealthHandler) Health(c *gin.Context) {
	body := response.HealthResponse{Status: "ok", Store: "unchecked", BaseURL: h.baseURL}

	if h.store == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn(ctx, "health check failed", zap.Error(err))

		body.Status = "degraded"
		body.Store = "unreachable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	body.Store = "ok"
	c.JSON(http.StatusOK, body)
}
