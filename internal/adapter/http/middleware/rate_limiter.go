package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"reminders/internal/adapter/http/helper"
	"reminders/internal/core/port"
	"reminders/pkg/logger"
)

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter is a fixed-window counter per client IP and route.
type RateLimiter struct {
	cache    *cache.Cache
	requests int
	window   time.Duration
	logger   *logger.Logger
	metrics  port.Metrics
	now      func() time.Time
	mutex    sync.Mutex
}

func NewRateLimiter(requests int, window time.Duration, log *logger.Logger, metrics port.Metrics) *RateLimiter {
	return &RateLimiter{
		cache:    cache.New(window, 2*window),
		requests: requests,
		window:   window,
		logger:   log,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Unknown paths share one bucket and one metric label.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		key := fmt.Sprintf("ip_%s:%s %s", c.ClientIP(), c.Request.Method, path)

		allowed, remaining, resetTime := rl.checkRateLimit(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rl.metrics.RecordRateLimitHit(c.Request.Context(), path)

			rl.logger.Warn(c.Request.Context(), "rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", rl.requests),
				zap.Duration("window", rl.window),
			)

			retryAfter := int(resetTime.Sub(rl.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			helper.AbortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests. Limit: %d per %v", rl.requests, rl.window))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(key string) (bool, int, time.Time) {
	now := rl.now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if v, found := rl.cache.Get(key); found {
		entry := v.(RateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= rl.requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, entry.ResetTime.Sub(now))

			return true, rl.requests - entry.Count, entry.ResetTime
		}
	}

	resetTime := now.Add(rl.window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, rl.window)

	return true, rl.requests - 1, resetTime
}
