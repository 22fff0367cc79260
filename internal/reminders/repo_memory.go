package reminders

import (
	"context"
	"sort"
	"sync"
	"time"

	"warranty-backend/internal/documents"
	"warranty-backend/internal/users"
)

// DocumentSource resolves the document a reminder points at.
type DocumentSource interface {
	GetByID(ctx context.Context, userId, documentID string) (documents.Document, error)
}

// UserSource resolves the recipient of a reminder.
type UserSource interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// MemoryRepo is an in-memory implementation of Repo. Unlike the
// Postgres repo it has no join to lean on, so it resolves documents and
// users through the in-memory repos it is built with.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Reminder
	docs  DocumentSource
	users UserSource
}

// NewMemoryRepo constructs a MemoryRepo backed by the given sources.
func NewMemoryRepo(docs DocumentSource, userSource UserSource) *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Reminder),
		docs:  docs,
		users: userSource,
	}
}

// Insert stores a new reminder.
func (r *MemoryRepo) Insert(ctx context.Context, reminder Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[reminder.ID] = reminder
	return nil
}

// ExistsForDocument reports whether any reminder exists for a document.
func (r *MemoryRepo) ExistsForDocument(ctx context.Context, documentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reminder := range r.data {
		if reminder.DocumentID == documentID {
			return true, nil
		}
	}
	return false, nil
}

// SelectDue returns due pending reminders, oldest first. Reminders whose
// document or user has disappeared are skipped, matching the cascade
// behavior of the database.
func (r *MemoryRepo) SelectDue(ctx context.Context, now time.Time, limit int) ([]DueReminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	pending := make([]Reminder, 0, len(r.data))
	for _, reminder := range r.data {
		if reminder.Status == StatusPending && !reminder.RemindAt.After(now) {
			pending = append(pending, reminder)
		}
	}
	r.mu.RUnlock()

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].RemindAt.Before(pending[j].RemindAt)
	})

	var out []DueReminder
	for _, reminder := range pending {
		if len(out) >= limit {
			break
		}
		doc, err := r.docs.GetByID(ctx, reminder.UserID, reminder.DocumentID)
		if err != nil || doc.ExpiryDate == nil {
			continue
		}
		user, err := r.users.GetByID(ctx, reminder.UserID)
		if err != nil {
			continue
		}
		out = append(out, DueReminder{
			ReminderID: reminder.ID,
			RemindAt:   reminder.RemindAt,
			DocumentID: doc.ID,
			Filename:   doc.OriginalFilename,
			ExpiryDate: *doc.ExpiryDate,
			UserEmail:  user.Email,
			UserName:   user.Name,
		})
	}
	return out, nil
}

// UpdateStatus marks a reminder sent or expired.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, reminderID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.data[reminderID]
	if !ok {
		return nil
	}
	reminder.Status = status
	r.data[reminderID] = reminder
	return nil
}

// UpdateRemindAt moves a pending reminder to a later stage.
func (r *MemoryRepo) UpdateRemindAt(ctx context.Context, reminderID string, remindAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.data[reminderID]
	if !ok {
		return nil
	}
	reminder.RemindAt = remindAt
	r.data[reminderID] = reminder
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
