package notifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"reminders/internal/core/domain"
	"reminders/internal/core/port"
	"reminders/pkg/logger"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

// Compose renders the message a reminder would be delivered as.
func Compose(reminder domain.Reminder) Email {
	var body strings.Builder

	fmt.Fprintf(&body, "Reminder: %s\n\n", reminder.Title)
	if reminder.Description != "" {
		fmt.Fprintf(&body, "%s\n\n", reminder.Description)
	}
	fmt.Fprintf(&body, "Due: %s\n", reminder.DueDate.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))

	return Email{
		To:      reminder.Email,
		Subject: "Reminder: " + reminder.Title,
		Body:    body.String(),
	}
}

// LogNotifier stands in for a mail provider. It logs the message it would
// have sent and always reports success.
type LogNotifier struct {
	logger *logger.Logger
}

var _ port.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}

	return &LogNotifier{logger: log}
}

func (n *LogNotifier) SendReminder(ctx context.Context, reminder domain.Reminder) error {
	email := Compose(reminder)

	n.logger.Info(ctx, "sending reminder email",
		zap.String("id", reminder.ID),
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)

	return nil
}
