package request

// ReminderRequest is the create payload. DueDate stays a string so the
// handler can report an unparseable timestamp as a field error.
type ReminderRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	Email       string `json:"email" validate:"required"`
}
