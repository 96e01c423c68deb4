package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestReminder_IsDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should be due when the due date has passed", func(t *testing.T) {
		r := Reminder{DueDate: now.Add(-time.Minute)}
		assert.True(t, r.IsDue(now))
	})

	t.Run("should be due exactly at the due date", func(t *testing.T) {
		r := Reminder{DueDate: now}
		assert.True(t, r.IsDue(now))
	})

	t.Run("should not be due in the future", func(t *testing.T) {
		r := Reminder{DueDate: now.Add(time.Minute)}
		assert.False(t, r.IsDue(now))
	})

	t.Run("should not be due once sent", func(t *testing.T) {
		r := Reminder{DueDate: now.Add(-time.Hour), Sent: true}
		assert.False(t, r.IsDue(now))
	})
}

func TestReminder_MarkSent(t *testing.T) {
	r := Reminder{}
	r.MarkSent()
	r.MarkSent()

	assert.True(t, r.Sent)
}

func TestReminderKey(t *testing.T) {
	RegisterTestingT(t)

	Expect(ReminderKey("abc")).To(Equal("reminder:abc"))

	id, ok := ReminderIDFromKey("reminder:abc")
	Expect(ok).To(BeTrue())
	Expect(id).To(Equal("abc"))

	_, ok = ReminderIDFromKey("session:abc")
	Expect(ok).To(BeFalse())
}

func TestParseTimestamp(t *testing.T) {
	RegisterTestingT(t)

	cases := map[string]time.Time{
		"2025-03-10T12:30:00Z":           time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		"2025-03-10T12:30:00.123Z":       time.Date(2025, 3, 10, 12, 30, 0, int(123*time.Millisecond), time.UTC),
		"2025-03-10T14:30:00+02:00":      time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		"2030-01-01T00:00:00+0530":       time.Date(2029, 12, 31, 18, 30, 0, 0, time.UTC),
		"2025-03-10T14:30:00.250-0300":   time.Date(2025, 3, 10, 17, 30, 0, int(250*time.Millisecond), time.UTC),
		"2025-03-10T12:30":               time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		"2025-03-10T12:30:45":            time.Date(2025, 3, 10, 12, 30, 45, 0, time.UTC),
		"2025-03-10":                     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		"  2025-03-10T12:30:00.000Z  ":   time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		"2025-03-10T12:30:00.123456789Z": time.Date(2025, 3, 10, 12, 30, 0, int(123*time.Millisecond), time.UTC),
	}

	for input, want := range cases {
		got, err := ParseTimestamp(input)
		Expect(err).To(BeNil(), input)
		Expect(got.Equal(want)).To(BeTrue(), "%s: got %s want %s", input, got, want)
		Expect(got.Location()).To(Equal(time.UTC))
	}

	for _, input := range []string{"", "tomorrow", "10/03/2025", "2025-13-01"} {
		_, err := ParseTimestamp(input)
		Expect(err).ToNot(BeNil(), input)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "2025-03-10T15:30:00.000Z", FormatTimestamp(ts))
}

func TestErrors(t *testing.T) {
	RegisterTestingT(t)

	storeErr := &StoreError{Op: "get", Key: "reminder:1", Err: errors.New("connection refused")}
	wrapped := errors.Join(errors.New("listing"), storeErr)

	Expect(IsStoreError(wrapped)).To(BeTrue())
	Expect(storeErr.Error()).To(ContainSubstring("reminder:1"))

	validation := NewValidationError("title", "title is required")
	Expect(IsValidationError(validation)).To(BeTrue())
	Expect(validation.Error()).To(Equal("validation failed: title: title is required"))

	parseErr := &ParseError{Key: "reminder:2", Err: ErrNotFound}
	Expect(errors.Is(parseErr, ErrNotFound)).To(BeTrue())
}

func TestReminder_JSON(t *testing.T) {
	RegisterTestingT(t)

	r := Reminder{
		ID:      "abc",
		Title:   "Pay rent",
		DueDate: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		Email:   "a@example.com",
		Created: time.Date(2025, 3, 1, 8, 0, 0, int(5*time.Millisecond), time.UTC),
	}

	raw, err := json.Marshal(r)
	Expect(err).To(BeNil())
	Expect(string(raw)).To(ContainSubstring(`"dueDate":"2025-03-10T12:30:00.000Z"`))
	Expect(string(raw)).To(ContainSubstring(`"created":"2025-03-01T08:00:00.005Z"`))
	Expect(string(raw)).To(ContainSubstring(`"description":""`))
	Expect(string(raw)).To(ContainSubstring(`"sent":false`))

	var back Reminder
	Expect(json.Unmarshal(raw, &back)).To(Succeed())
	Expect(back).To(Equal(r))
}

func TestReminder_UnmarshalJSON_LocalDueDate(t *testing.T) {
	RegisterTestingT(t)

	var r Reminder
	err := json.Unmarshal([]byte(`{"id":"1","title":"t","dueDate":"2025-01-01T10:00","email":"e"}`), &r)
	Expect(err).To(BeNil())
	Expect(r.DueDate).To(Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)))
	Expect(r.Created.IsZero()).To(BeTrue())

	Expect(json.Unmarshal([]byte(`{"id":"1","dueDate":"soon"}`), &r)).ToNot(Succeed())
	Expect(json.Unmarshal([]byte(`not json`), &r)).ToNot(Succeed())
}
