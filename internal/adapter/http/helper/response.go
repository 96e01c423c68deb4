package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	. "reminders/internal/adapter/http/validation"
	"reminders/internal/core/domain"
	"reminders/internal/core/model/response"
)

func SendError(c *gin.Context, statusCode int, code string, message string, errors []response.ValidationError) {
	c.JSON(statusCode, response.ErrorResponse{
		Error:  message,
		Code:   code,
		Errors: errors,
	})
}

// AbortWithError sends the envelope and stops the handler chain.
func AbortWithError(c *gin.Context, statusCode int, code string, message string) {
	SendError(c, statusCode, code, message, nil)
	c.Abort()
}

func SendValidationError(c *gin.Context, err error) {
	fields := FormatValidationErrors(err)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}

	message := "Missing or invalid fields"
	if len(names) > 0 {
		message += ": " + strings.Join(names, ", ")
	}

	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", message, fields)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// SendServiceError maps an error from the service layer to a status code.
// Anything unexpected becomes a 500 with internalMessage; the cause is not
// exposed to the client.
func SendServiceError(c *gin.Context, err error, internalMessage string) {
	switch {
	case domain.IsValidationError(err):
		SendValidationError(c, err)
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "Reminder not found")
	default:
		SendInternalError(c, internalMessage)
	}
}
