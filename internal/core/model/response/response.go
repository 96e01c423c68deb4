package response

import "reminders/internal/core/domain"

type CreateReminderResponse struct {
	Success  bool            `json:"success"`
	ID       string          `json:"id"`
	Reminder domain.Reminder `json:"reminder"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	BaseURL string `json:"baseUrl,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse always carries a human readable error message.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}
