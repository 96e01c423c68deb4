package http

import (
	"context"
	"fmt"

	"reminders/internal/adapter/http/handler"
	"reminders/internal/adapter/http/validation"
	"reminders/internal/adapter/kv"
	"reminders/internal/adapter/kv/memory"
	"reminders/internal/adapter/kv/redis"
	"reminders/internal/adapter/notifier"
	"reminders/internal/adapter/repository"
	"reminders/internal/core/port"
	"reminders/internal/core/service"
	"reminders/pkg/config"
	"reminders/pkg/logger"
)

type Container struct {
	Store        *kv.InstrumentedStore
	ReminderRepo port.ReminderRepository

	ReminderService *service.ReminderService
	Sweeper         *service.Sweeper

	ReminderHandler *handler.ReminderHandler
	HealthHandler   *handler.HealthHandler
}

// OpenStore connects the configured key-value backend.
func OpenStore(ctx context.Context, cfg *config.AppConfig) (port.KeyValueStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.NewStore(), func() error { return nil }, nil
	case config.StoreDriverRedis:
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}

		store := redis.NewStore(client)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis unreachable: %w", err)
		}

		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
	}
}

func NewContainer(store port.KeyValueStore, cfg *config.AppConfig, metrics port.Metrics, log *logger.Logger) *Container {
	instrumented := kv.Instrument(store, cfg.Store.Driver, metrics)

	reminderRepo := repository.NewReminderRepository(instrumented, log)

	reminderSvc := service.NewReminderService(reminderRepo, validation.New(),
		service.WithMetrics(metrics),
		service.WithLogger(log),
	)

	sweeper := service.NewSweeper(reminderRepo, notifier.NewLogNotifier(log),
		service.WithSweepMetrics(metrics),
		service.WithSweepLogger(log),
		service.WithMarkFailedAsSent(cfg.Sweep.MarkFailedAsSent),
	)

	return &Container{
		Store:        instrumented,
		ReminderRepo: reminderRepo,

		ReminderService: reminderSvc,
		Sweeper:         sweeper,

		ReminderHandler: handler.NewReminderHandler(reminderSvc, log),
		HealthHandler:   handler.NewHealthHandler(instrumented, cfg.API.BaseURL, log),
	}
}
