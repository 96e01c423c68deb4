package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"reminders/internal/adapter/http/routes"
	"reminders/internal/core/port"
	"reminders/pkg/config"
	"reminders/pkg/logger"
)

type Server struct {
	srv    *http.Server
	config *config.AppConfig
	logger *logger.Logger
}

func NewServer(container *Container, metrics port.Metrics, log *logger.Logger, cfg *config.AppConfig) *Server {
	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		ReminderHandler: container.ReminderHandler,
		HealthHandler:   container.HealthHandler,
	}, metrics, log, cfg)

	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		config: cfg,
		logger: log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "server starting",
			zap.String("addr", s.srv.Addr),
			zap.String("environment", s.config.App.Environment),
			zap.String("store", s.config.Store.Driver),
			zap.Bool("rate_limit_enabled", s.config.RateLimit.Enabled),
			zap.String("docs_url", s.config.API.BaseURL),
		)

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}
