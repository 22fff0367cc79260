package reminders

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert stores a new reminder.
func (r *PGRepo) Insert(ctx context.Context, reminder Reminder) error {
	const query = `
INSERT INTO reminders (id, user_id, document_id, remind_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		reminder.ID,
		reminder.UserID,
		reminder.DocumentID,
		reminder.RemindAt,
		reminder.Status,
		reminder.CreatedAt,
	)
	return err
}

// ExistsForDocument reports whether any reminder exists for a document.
func (r *PGRepo) ExistsForDocument(ctx context.Context, documentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reminders WHERE document_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, documentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SelectDue returns due pending reminders joined with the document and
// recipient, oldest first. The partial index on pending reminders keeps
// this cheap regardless of how many reminders have been sent.
func (r *PGRepo) SelectDue(ctx context.Context, now time.Time, limit int) ([]DueReminder, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT r.id, r.remind_at, r.document_id, d.original_filename, d.expiry_date, u.email, u.name
FROM reminders r
JOIN documents d ON d.id = r.document_id
JOIN users u ON u.id = r.user_id
WHERE r.status = 'pending' AND r.remind_at <= $1
  AND d.expiry_date IS NOT NULL
  AND u.email IS NOT NULL AND u.email <> ''
ORDER BY r.remind_at
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DueReminder
	for rows.Next() {
		var due DueReminder
		var name sql.NullString
		if err := rows.Scan(
			&due.ReminderID,
			&due.RemindAt,
			&due.DocumentID,
			&due.Filename,
			&due.ExpiryDate,
			&due.UserEmail,
			&name,
		); err != nil {
			return nil, err
		}
		due.UserName = name.String
		out = append(out, due)
	}
	return out, rows.Err()
}

// UpdateStatus marks a reminder sent or expired.
func (r *PGRepo) UpdateStatus(ctx context.Context, reminderID, status string) error {
	const query = `UPDATE reminders SET status = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, status, reminderID)
	return err
}

// UpdateRemindAt moves a pending reminder to a later stage.
func (r *PGRepo) UpdateRemindAt(ctx context.Context, reminderID string, remindAt time.Time) error {
	const query = `UPDATE reminders SET remind_at = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, remindAt, reminderID)
	return err
}

var _ Repo = (*PGRepo)(nil)
