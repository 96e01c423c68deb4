package notifier

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"reminders/internal/core/domain"
	"reminders/pkg/logger"
)

func TestCompose(t *testing.T) {
	RegisterTestingT(t)

	email := Compose(domain.Reminder{
		Title:       "Dentist",
		Description: "Bring the insurance card",
		DueDate:     time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Email:       "me@example.com",
	})

	Expect(email.To).To(Equal("me@example.com"))
	Expect(email.Subject).To(Equal("Reminder: Dentist"))
	Expect(email.Body).To(ContainSubstring("Bring the insurance card"))
	Expect(email.Body).To(ContainSubstring("Due: Mon, 10 Mar 2025 14:30 UTC"))
}

func TestCompose_NoDescription(t *testing.T) {
	RegisterTestingT(t)

	email := Compose(domain.Reminder{Title: "Call mom", DueDate: time.Now()})
	Expect(email.Body).To(HavePrefix("Reminder: Call mom\n\nDue: "))
}

func TestLogNotifier_SendReminder(t *testing.T) {
	RegisterTestingT(t)

	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(logger.NewWithCore(core))

	err := n.SendReminder(context.Background(), domain.Reminder{ID: "1", Title: "Dentist", Email: "me@example.com"})

	Expect(err).To(BeNil())
	Expect(logs.Len()).To(Equal(1))
	Expect(logs.All()[0].ContextMap()).To(HaveKeyWithValue("to", "me@example.com"))
	Expect(logs.All()[0].ContextMap()).To(HaveKeyWithValue("subject", "Reminder: Dentist"))
}
