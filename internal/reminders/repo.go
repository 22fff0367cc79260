package reminders

import (
	"context"
	"time"
)

// Repo persists reminders.
type Repo interface {
	Insert(ctx context.Context, reminder Reminder) error
	ExistsForDocument(ctx context.Context, documentID string) (bool, error)
	// SelectDue returns pending reminders whose remind_at has passed,
	// oldest first, joined with document and recipient fields.
	SelectDue(ctx context.Context, now time.Time, limit int) ([]DueReminder, error)
	UpdateStatus(ctx context.Context, reminderID, status string) error
	UpdateRemindAt(ctx context.Context, reminderID string, remindAt time.Time) error
}
