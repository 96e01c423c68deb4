package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"go.uber.org/zap"

	"reminders/internal/core/domain"
	"reminders/internal/core/port"
	"reminders/pkg/logger"
)

// ReminderRepository stores each reminder as a JSON document under
// reminder:<id>. Nothing is cached between calls.
type ReminderRepository struct {
	store  port.KeyValueStore
	logger *logger.Logger
}

func NewReminderRepository(store port.KeyValueStore, log *logger.Logger) port.ReminderRepository {
	if log == nil {
		log = logger.NewNop()
	}

	return &ReminderRepository{
		store:  store,
		logger: log,
	}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	if reminder.ID == "" {
		return domain.Reminder{}, domain.NewValidationError("id", "id is required")
	}

	if err := r.put(ctx, reminder); err != nil {
		return domain.Reminder{}, err
	}

	return reminder, nil
}

func (r *ReminderRepository) GetByID(ctx context.Context, id string) (domain.Reminder, error) {
	key := domain.ReminderKey(id)

	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reminder{}, domain.ErrNotFound
		}
		return domain.Reminder{}, &domain.StoreError{Op: "get", Key: key, Err: err}
	}

	return decode(key, raw)
}

func (r *ReminderRepository) List(ctx context.Context) ([]domain.Reminder, error) {
	keys, err := r.store.List(ctx, domain.ReminderKeyPrefix)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Key: domain.ReminderKeyPrefix, Err: err}
	}

	reminders := make([]domain.Reminder, 0, len(keys))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := r.store.Get(ctx, key)
		if err != nil {
			// Deleted between enumeration and fetch.
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}

			r.logger.Warn(ctx, "skipping reminder that could not be fetched",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}

		reminder, err := decode(key, raw)
		if err != nil {
			r.logger.Warn(ctx, "skipping corrupt reminder record",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}

		reminders = append(reminders, reminder)
	}

	sortByDueDate(reminders)

	return reminders, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder domain.Reminder) error {
	if reminder.ID == "" {
		return domain.NewValidationError("id", "id is required")
	}

	return r.put(ctx, reminder)
}

func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	key := domain.ReminderKey(id)

	if err := r.store.Delete(ctx, key); err != nil {
		return &domain.StoreError{Op: "delete", Key: key, Err: err}
	}

	return nil
}

func (r *ReminderRepository) put(ctx context.Context, reminder domain.Reminder) error {
	key := domain.ReminderKey(reminder.ID)

	reminder.DueDate = domain.NormalizeTimestamp(reminder.DueDate)
	reminder.Created = domain.NormalizeTimestamp(reminder.Created)

	raw, err := json.Marshal(reminder)
	if err != nil {
		return &domain.StoreError{Op: "encode", Key: key, Err: err}
	}

	if err := r.store.Put(ctx, key, raw); err != nil {
		return &domain.StoreError{Op: "put", Key: key, Err: err}
	}

	return nil
}

func decode(key string, raw []byte) (domain.Reminder, error) {
	var reminder domain.Reminder

	if err := json.Unmarshal(raw, &reminder); err != nil {
		return domain.Reminder{}, &domain.ParseError{Key: key, Err: err}
	}

	if reminder.ID == "" {
		if id, ok := domain.ReminderIDFromKey(key); ok {
			reminder.ID = id
		}
	}

	return reminder, nil
}

// sortByDueDate orders ascending by due date; equal due dates keep
// creation order.
func sortByDueDate(reminders []domain.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]

		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}

		return a.Created.Before(b.Created)
	})
}
