package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"reminders/internal/core/domain"
	"reminders/internal/core/model/request"
)

var (
	reminderFactory = fab.New(domain.Reminder{})
	sequence        atomic.Int64
)

type ReminderOption func(map[string]any)

func DueAt(t time.Time) ReminderOption {
	return func(data map[string]any) {
		data["DueDate"] = domain.NormalizeTimestamp(t)
	}
}

func CreatedAt(t time.Time) ReminderOption {
	return func(data map[string]any) {
		data["Created"] = domain.NormalizeTimestamp(t)
	}
}

func Sent() ReminderOption {
	return func(data map[string]any) {
		data["Sent"] = true
	}
}

func WithEmail(email string) ReminderOption {
	return func(data map[string]any) {
		data["Email"] = email
	}
}

// Reminder builds a valid, unsent reminder due an hour from now.
func Reminder(opts ...ReminderOption) domain.Reminder {
	n := sequence.Add(1)
	now := domain.NormalizeTimestamp(time.Now())

	data := map[string]any{
		"ID":          uuid.NewString(),
		"Title":       fmt.Sprintf("Reminder %d", n),
		"Description": fmt.Sprintf("Details for reminder %d", n),
		"DueDate":     now.Add(time.Hour),
		"Email":       fmt.Sprintf("user%d@example.com", n),
		"Sent":        false,
		"Created":     now,
	}

	for _, opt := range opts {
		opt(data)
	}

	return reminderFactory.Build(data)
}

func ReminderRequest(dueDate string) request.ReminderRequest {
	n := sequence.Add(1)

	return request.ReminderRequest{
		Title:       fmt.Sprintf("Reminder %d", n),
		Description: "Bring the documents",
		DueDate:     dueDate,
		Email:       fmt.Sprintf("user%d@example.com", n),
	}
}
