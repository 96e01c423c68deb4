package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"reminders/internal/adapter/http/handler"
	. "reminders/internal/adapter/http/helper"
	"reminders/internal/adapter/http/middleware"
	"reminders/internal/core/port"
	"reminders/internal/core/telemetry"
	"reminders/pkg/config"
	"reminders/pkg/logger"
)

type HandlersConfig struct {
	ReminderHandler *handler.ReminderHandler
	HealthHandler   *handler.HealthHandler
}

func SetupRouter(handlers HandlersConfig, metrics port.Metrics, log *logger.Logger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, log, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics port.Metrics, log *logger.Logger, cfg *config.AppConfig) *gin.Engine {
	if metrics == nil {
		metrics = telemetry.NewNoOpMetrics()
	}
	if log == nil {
		log = logger.NewNop()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(otelgin.Middleware(cfg.App.Name))
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.MetricsMiddleware(metrics))

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, log, metrics)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.NoRoute(func(c *gin.Context) {
		SendError(c, http.StatusNotFound, "NOT_FOUND", "Not Found", nil)
	})

	router.NoMethod(func(c *gin.Context) {
		SendError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed", nil)
	})

	if handlers.HealthHandler != nil {
		router.GET("/healthz", handlers.HealthHandler.Health)
	}

	if handlers.ReminderHandler != nil {
		setupReminderRoutes(router, handlers.ReminderHandler)
	}

	return router
}

func setupReminderRoutes(router *gin.Engine, reminderHandler *handler.ReminderHandler) {
	api := router.Group("/api")
	{
		api.POST("/reminders", reminderHandler.CreateReminder)
		api.GET("/reminders", reminderHandler.GetAllReminders)
		api.GET("/reminders/:id", reminderHandler.GetReminder)
		api.DELETE("/reminders/*id", reminderHandler.DeleteReminder)
	}
}
