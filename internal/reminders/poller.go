package reminders

import (
	"context"
	"sync/atomic"
	"time"

	"warranty-backend/internal/shared/metrics"
	"warranty-backend/internal/shared/telemetry"
)

// Notifier delivers one reminder email.
type Notifier interface {
	SendReminder(ctx context.Context, toEmail, toName, documentName string, expiry time.Time, daysRemaining int) error
}

const (
	defaultBatchSize   = 50
	defaultSendTimeout = 30 * time.Second
)

// Poller periodically scans for due reminders and advances their state
// machine: expired documents are marked expired without an email, a
// successful 7-day-stage send reschedules the row to the 3-day stage,
// a successful final send marks it sent, and a failed send leaves the
// row untouched so the next tick retries it.
type Poller struct {
	Repo      Repo
	Notifier  Notifier
	Interval  time.Duration
	BatchSize int

	// SendTimeout bounds each notification call. A provider that hangs
	// past it counts as a failed send and is retried next tick.
	SendTimeout time.Duration

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time

	inFlight atomic.Bool
}

// Run ticks immediately, then on every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	p.Tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick processes one batch of due reminders. A tick that is still
// running when the next interval fires makes the new tick a no-op, so
// slow email providers cannot pile up overlapping scans.
func (p *Poller) Tick(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer p.inFlight.Store(false)

	now := p.now()
	due, err := p.Repo.SelectDue(ctx, now, p.batchSize())
	if err != nil {
		telemetry.Error("reminder.scan_failed", map[string]any{"error": err.Error()})
		return
	}

	for _, reminder := range due {
		p.process(ctx, reminder, now)
	}
}

func (p *Poller) process(ctx context.Context, due DueReminder, now time.Time) {
	// Expiry dates are day-granular midnights, so a document counts as
	// expired from the start of its expiry day. Expired rows get no
	// email, only a status flip.
	if !due.ExpiryDate.After(now) {
		if err := p.Repo.UpdateStatus(ctx, due.ReminderID, StatusExpired); err != nil {
			telemetry.Error("reminder.update_failed", map[string]any{
				"reminder_id": due.ReminderID,
				"error":       err.Error(),
			})
			return
		}
		metrics.IncReminderExpired()
		telemetry.Info("reminder.expired", map[string]any{
			"reminder_id": due.ReminderID,
			"document_id": due.DocumentID,
		})
		return
	}

	daysRemaining := daysUntil(now, due.ExpiryDate)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.sendTimeout())
	err := p.Notifier.SendReminder(sendCtx, due.UserEmail, due.UserName, due.Filename, due.ExpiryDate, daysRemaining)
	cancel()
	if err != nil {
		// Leave the row pending and untouched; the next tick retries.
		// A retry that follows a send the provider actually delivered
		// means a duplicate email, which beats a missed reminder.
		metrics.IncReminderFailed()
		telemetry.Error("reminder.send_failed", map[string]any{
			"reminder_id": due.ReminderID,
			"document_id": due.DocumentID,
			"error":       err.Error(),
		})
		return
	}
	metrics.IncReminderSent()

	if daysRemaining > 3 {
		// First-stage send; move the same row to the 3-day stage.
		nextAt := due.ExpiryDate.AddDate(0, 0, -3)
		if err := p.Repo.UpdateRemindAt(ctx, due.ReminderID, nextAt); err != nil {
			telemetry.Error("reminder.update_failed", map[string]any{
				"reminder_id": due.ReminderID,
				"error":       err.Error(),
			})
			return
		}
		metrics.IncReminderRescheduled()
		telemetry.Info("reminder.rescheduled", map[string]any{
			"reminder_id": due.ReminderID,
			"document_id": due.DocumentID,
			"remind_at":   nextAt.Format(time.RFC3339),
		})
		return
	}

	if err := p.Repo.UpdateStatus(ctx, due.ReminderID, StatusSent); err != nil {
		telemetry.Error("reminder.update_failed", map[string]any{
			"reminder_id": due.ReminderID,
			"error":       err.Error(),
		})
		return
	}
	telemetry.Info("reminder.sent", map[string]any{
		"reminder_id": due.ReminderID,
		"document_id": due.DocumentID,
		"days_left":   daysRemaining,
	})
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

func (p *Poller) batchSize() int {
	if p.BatchSize > 0 {
		return p.BatchSize
	}
	return defaultBatchSize
}

func (p *Poller) sendTimeout() time.Duration {
	if p.SendTimeout > 0 {
		return p.SendTimeout
	}
	return defaultSendTimeout
}
