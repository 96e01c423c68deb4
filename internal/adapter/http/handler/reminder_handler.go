package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "reminders/internal/adapter/http/helper"
	"reminders/internal/core/model/request"
	"reminders/internal/core/model/response"
	"reminders/internal/core/port"
	"reminders/pkg/logger"
	. "reminders/pkg/tracing"
)

type ReminderHandler struct {
	svc    port.ReminderService
	Logger *logger.Logger
}

func NewReminderHandler(svc port.ReminderService, log *logger.Logger) *ReminderHandler {
	if log == nil {
		log = logger.NewNop()
	}

	return &ReminderHandler{
		svc:    svc,
		Logger: log,
	}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.reminder.CreateReminder", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateReminder"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	var params request.ReminderRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON or request body", nil)
		return
	}

	reminder, err := h.svc.Create(ctx, params)

	if err != nil {
		AddSpanError(span, err)
		SendServiceError(c, err, "Failed to save reminder")
		return
	}

	span.SetAttributes(attribute.String("reminder.id", reminder.ID))

	c.JSON(http.StatusCreated, response.CreateReminderResponse{
		Success:  true,
		ID:       reminder.ID,
		Reminder: reminder,
	})
}

func (h *ReminderHandler) GetAllReminders(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.reminder.GetAllReminders", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllReminders"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	reminders, err := h.svc.List(ctx)

	if err != nil {
		AddSpanError(span, err)

		h.Logger.Error(ctx, "failed to list reminders", zap.Error(err))

		SendServiceError(c, err, "Failed to fetch reminders")
		return
	}

	span.SetAttributes(attribute.Int("reminder.count", len(reminders)))

	c.JSON(http.StatusOK, reminders)
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	id := c.Param("id")

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.reminder.GetReminder", []attribute.KeyValue{
		attribute.String("handler.operation", "GetReminder"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
		attribute.String("reminder.id", id),
	})
	defer span.End()

	reminder, err := h.svc.GetByID(ctx, id)

	if err != nil {
		AddSpanError(span, err)
		SendServiceError(c, err, "Failed to fetch reminder")
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder takes the id from the last path segment, so
// /api/reminders/ and /api/reminders/x/ both count as a missing id.
// Deleting an unknown id still succeeds.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.reminder.DeleteReminder", []attribute.KeyValue{
		attribute.String("handler.operation", "DeleteReminder"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	segments := strings.Split(c.Param("id"), "/")
	id := segments[len(segments)-1]

	if id == "" {
		SendBadRequestError(c, "id", "Missing reminder id")
		return
	}

	span.SetAttributes(attribute.String("reminder.id", id))

	if err := h.svc.Delete(ctx, id); err != nil {
		AddSpanError(span, err)

		h.Logger.Error(ctx, "failed to delete reminder", zap.String("id", id), zap.Error(err))

		SendServiceError(c, err, "Failed to delete reminder")
		return
	}

	c.JSON(http.StatusOK, response.DeleteResponse{
		Success: true,
		Message: "Reminder deleted successfully",
	})
}
