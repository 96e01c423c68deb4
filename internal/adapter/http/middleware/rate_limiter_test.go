package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"reminders/internal/core/telemetry"
	"reminders/pkg/logger"
)

type hitRecorder struct {
	telemetry.NoOpMetrics
	paths []string
}

func (r *hitRecorder) RecordRateLimitHit(ctx context.Context, path string) {
	r.paths = append(r.paths, path)
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(rl.RateLimitMiddleware())
	router.GET("/api/reminders", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })
	router.POST("/api/reminders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	return router
}

func doRequest(router http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":1234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(2, time.Minute, logger.NewNop(), telemetry.NewNoOpMetrics())
	router := newLimitedRouter(rl)

	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusOK))

	second := doRequest(router, "GET", "/api/reminders", "10.0.0.1")
	Expect(second.Code).To(Equal(http.StatusOK))
	Expect(second.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))

	blocked := doRequest(router, "GET", "/api/reminders", "10.0.0.1")
	Expect(blocked.Code).To(Equal(http.StatusTooManyRequests))
	Expect(blocked.Body.String()).To(ContainSubstring(`"code":"RATE_LIMITED"`))
	Expect(blocked.Header().Get("Retry-After")).ToNot(BeEmpty())
}

func TestRateLimiter_KeysByClientAndRoute(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(1, time.Minute, logger.NewNop(), telemetry.NewNoOpMetrics())
	router := newLimitedRouter(rl)

	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusOK))
	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.2").Code).To(Equal(http.StatusOK))
	Expect(doRequest(router, "POST", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusCreated))
	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	RegisterTestingT(t)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute, logger.NewNop(), telemetry.NewNoOpMetrics())
	rl.now = func() time.Time { return now }
	router := newLimitedRouter(rl)

	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusOK))
	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))

	now = now.Add(time.Minute + time.Second)
	Expect(doRequest(router, "GET", "/api/reminders", "10.0.0.1").Code).To(Equal(http.StatusOK))
}

func TestRateLimiter_UnmatchedPathsShareOneBucket(t *testing.T) {
	RegisterTestingT(t)

	hits := &hitRecorder{}
	rl := NewRateLimiter(1, time.Minute, logger.NewNop(), hits)
	router := newLimitedRouter(rl)

	Expect(doRequest(router, "GET", "/nope/1", "10.0.0.1").Code).To(Equal(http.StatusNotFound))
	Expect(doRequest(router, "GET", "/nope/2", "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))
	Expect(doRequest(router, "GET", "/nope/3", "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))

	Expect(hits.paths).To(Equal([]string{"unmatched", "unmatched"}))
}
