package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "reminders/internal/adapter/http"
	"reminders/internal/adapter/scheduler"
	"reminders/internal/adapter/telemetry"
	"reminders/pkg/config"
	"reminders/pkg/logger"
)

var (
	Version   = "1.0.0"
	GitCommit = "development"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reminders API server",
		Long:  "Start the HTTP API and, when sweep.enabled is set, the in-process sweep scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, configPath(cmd))
		},
	}
}

// NewSweepCommand runs a single sweep and exits. It fails only when the
// reminders could not be listed; per-reminder failures are logged.
func NewSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Send every due reminder once",
		Long:  "Run one sweep over all reminders. Meant to be triggered by an external scheduler such as cron",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSweep(ctx, configPath(cmd))
		},
	}
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reminders version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reminders v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

type runtimeDeps struct {
	cfg       *config.AppConfig
	logger    *logger.Logger
	telemetry *telemetry.Container
	container *apphttp.Container
	close     func()
}

func bootstrap(ctx context.Context, path string, serveMetrics bool) (*runtimeDeps, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.App.Name, cfg.Logging.Level, cfg.Logging.LokiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	metricsPort := cfg.Telemetry.MetricsPort
	if !serveMetrics {
		metricsPort = ""
	}

	tel, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		MetricsPort:    metricsPort,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	}, appLogger)
	if err != nil {
		appLogger.Sync()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	store, closeStore, err := apphttp.OpenStore(ctx, cfg)
	if err != nil {
		appLogger.Error(ctx, "failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		tel.Shutdown(context.Background())
		appLogger.Sync()
		return nil, err
	}

	container := apphttp.NewContainer(store, cfg, tel.AppMetrics, appLogger)

	return &runtimeDeps{
		cfg:       cfg,
		logger:    appLogger,
		telemetry: tel,
		container: container,
		close: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := closeStore(); err != nil {
				appLogger.Warn(shutdownCtx, "failed to close store", zap.Error(err))
			}
			if err := tel.Shutdown(shutdownCtx); err != nil {
				appLogger.Warn(shutdownCtx, "failed to shut down telemetry", zap.Error(err))
			}
			appLogger.Sync()
		},
	}, nil
}

func runServer(ctx context.Context, path string) error {
	deps, err := bootstrap(ctx, path, true)
	if err != nil {
		return err
	}
	defer deps.close()

	server := apphttp.NewServer(deps.container, deps.telemetry.AppMetrics, deps.logger, deps.cfg)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return server.Run(ctx)
	})

	if deps.cfg.Sweep.Enabled {
		sched := scheduler.New(deps.container.Sweeper, deps.cfg.Sweep.Interval, deps.logger)

		group.Go(func() error {
			return sched.Run(ctx)
		})
	}

	return group.Wait()
}

func runSweep(ctx context.Context, path string) error {
	deps, err := bootstrap(ctx, path, false)
	if err != nil {
		return err
	}
	defer deps.close()

	result, err := deps.container.Sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("checked=%d due=%d sent=%d failed=%d skipped=%d\n",
		result.Checked, result.Due, result.Sent, result.Failed, result.Skipped)

	return nil
}
