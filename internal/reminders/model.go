package reminders

import "time"

// Reminder statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusExpired = "expired"
)

// Reminder is a scheduled expiry notification for one document.
type Reminder struct {
	ID         string
	UserID     string
	DocumentID string
	RemindAt   time.Time
	Status     string
	CreatedAt  time.Time
}

// DueReminder is a reminder joined with the document and recipient
// fields the poller needs to send an email.
type DueReminder struct {
	ReminderID string
	RemindAt   time.Time
	DocumentID string
	Filename   string
	ExpiryDate time.Time
	UserEmail  string
	UserName   string
}
