package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const ReminderKeyPrefix = "reminder:"

type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Email       string    `json:"email"`
	Sent        bool      `json:"sent"`
	Created     time.Time `json:"created"`
}

// ReminderKey is the store key a reminder lives under.
func ReminderKey(id string) string {
	return ReminderKeyPrefix + id
}

// ReminderIDFromKey strips the key prefix. ok is false for foreign keys.
func ReminderIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, ReminderKeyPrefix) {
		return "", false
	}

	return strings.TrimPrefix(key, ReminderKeyPrefix), true
}

func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Sent && !r.DueDate.After(now)
}

// MarkSent is one-way: there is no operation that clears the flag.
func (r *Reminder) MarkSent() {
	r.Sent = true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads ISO 8601 input. Values without a zone, such as what a
// datetime-local input submits, are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NormalizeTimestamp(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp: %q", value)
}

// NormalizeTimestamp puts t in UTC at millisecond precision, the shape
// browsers produce with Date.toISOString.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

type reminderJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Email       string `json:"email"`
	Sent        bool   `json:"sent"`
	Created     string `json:"created"`
}

// MarshalJSON writes timestamps as UTC with millisecond precision.
func (r Reminder) MarshalJSON() ([]byte, error) {
	return json.Marshal(reminderJSON{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     FormatTimestamp(r.DueDate),
		Email:       r.Email,
		Sent:        r.Sent,
		Created:     FormatTimestamp(r.Created),
	})
}

// UnmarshalJSON accepts any timestamp shape ParseTimestamp does. An empty
// created is tolerated; an empty or unreadable dueDate is not.
func (r *Reminder) UnmarshalJSON(data []byte) error {
	var raw reminderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	due, err := ParseTimestamp(raw.DueDate)
	if err != nil {
		return fmt.Errorf("dueDate: %w", err)
	}

	var created time.Time
	if raw.Created != "" {
		if created, err = ParseTimestamp(raw.Created); err != nil {
			return fmt.Errorf("created: %w", err)
		}
	}

	*r = Reminder{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		DueDate:     due,
		Email:       raw.Email,
		Sent:        raw.Sent,
		Created:     created,
	}

	return nil
}
