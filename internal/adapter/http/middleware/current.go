package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ct "reminders/pkg/context"
)

const RequestIDHeader = "X-Request-ID"

// CurrentMiddleware tags the request with an id, taken from X-Request-ID
// when the caller sent one, and echoes it back.
func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		current := &ct.Current{
			RequestID: requestID,
			ClientIP:  c.ClientIP(),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			UserAgent: c.Request.UserAgent(),
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))

		c.Next()
	}
}
