package reminders

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"warranty-backend/internal/shared/telemetry"
)

// Scheduler creates the single evolving reminder a document gets once
// its expiry date is known. The two reminder stages (7 days out, then
// 3 days out) live in one row whose remind_at the poller advances.
type Scheduler struct {
	Repo Repo

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// CreateForDocument inserts a pending reminder for a document, picking
// the first stage from how far away the expiry date is. A document that
// already has a reminder, or whose expiry has already passed, gets
// nothing.
func (s *Scheduler) CreateForDocument(ctx context.Context, userID, documentID string, expiry time.Time) error {
	now := s.now()

	if !expiry.After(now) {
		telemetry.Info("reminder.skipped", map[string]any{
			"document_id": documentID,
			"reason":      "expiry already passed",
		})
		return nil
	}

	exists, err := s.Repo.ExistsForDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	var remindAt time.Time
	switch days := daysUntil(now, expiry); {
	case days >= 7:
		remindAt = expiry.AddDate(0, 0, -7)
	case days >= 3:
		remindAt = expiry.AddDate(0, 0, -3)
	default:
		remindAt = now
	}

	reminder := Reminder{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
		RemindAt:   remindAt,
		Status:     StatusPending,
		CreatedAt:  now,
	}
	if err := s.Repo.Insert(ctx, reminder); err != nil {
		return err
	}

	telemetry.Info("reminder.created", map[string]any{
		"reminder_id": reminder.ID,
		"document_id": documentID,
		"remind_at":   remindAt.Format(time.RFC3339),
	})
	return nil
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// daysUntil counts the days left before expiry, rounding partial days
// up so that "2.5 days left" still reads as 3.
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
