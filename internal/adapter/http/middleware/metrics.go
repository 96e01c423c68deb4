package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"reminders/internal/core/port"
)

type connectionTracker interface {
	IncrementActiveConnections(ctx context.Context)
	DecrementActiveConnections(ctx context.Context)
}

func MetricsMiddleware(metrics port.Metrics) gin.HandlerFunc {
	tracker, _ := metrics.(connectionTracker)

	return func(c *gin.Context) {
		start := time.Now()

		if tracker != nil {
			tracker.IncrementActiveConnections(c.Request.Context())
			defer tracker.DecrementActiveConnections(c.Request.Context())
		}

		c.Next()

		// Unmatched paths share one label to keep cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
