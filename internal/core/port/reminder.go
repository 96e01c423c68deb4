package port

import (
	"context"

	"reminders/internal/core/domain"
	"reminders/internal/core/model/request"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	GetByID(ctx context.Context, id string) (domain.Reminder, error)
	List(ctx context.Context) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder domain.Reminder) error
	Delete(ctx context.Context, id string) error
}

type ReminderService interface {
	Create(ctx context.Context, req request.ReminderRequest) (domain.Reminder, error)
	GetByID(ctx context.Context, id string) (domain.Reminder, error)
	List(ctx context.Context) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder domain.Reminder) error
	Delete(ctx context.Context, id string) error
}

type Notifier interface {
	SendReminder(ctx context.Context, reminder domain.Reminder) error
}
