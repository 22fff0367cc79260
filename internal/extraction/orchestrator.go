package extraction

import (
	"context"
	"fmt"
	"time"

	"warranty-backend/internal/classify"
	"warranty-backend/internal/documents"
	"warranty-backend/internal/extract"
	"warranty-backend/internal/llm"
	"warranty-backend/internal/shared/metrics"
	"warranty-backend/internal/shared/storage/object"
	"warranty-backend/internal/shared/telemetry"
)

// ReminderScheduler creates expiry reminders once a document's expiry
// date is known.
type ReminderScheduler interface {
	CreateForDocument(ctx context.Context, userID, documentID string, expiry time.Time) error
}

// Orchestrator runs the extraction pipeline for uploaded documents:
// classify the file, call the model with the matching strategy, parse
// the response and store the expiry date. It runs in the background;
// failures are logged and never surface to the uploader.
type Orchestrator struct {
	LLM       llm.Client
	Store     object.ObjectStore
	Docs      documents.DocumentsRepo
	Scheduler ReminderScheduler
	Timeout   time.Duration
}

// Start kicks off extraction for a document without blocking the caller.
func (o *Orchestrator) Start(doc documents.Document) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.fail(doc, fmt.Errorf("panic: %v", r))
			}
		}()
		if err := o.Run(context.Background(), doc); err != nil {
			o.fail(doc, err)
		}
	}()
}

// Run executes the pipeline synchronously. Exposed for the tests and
// for callers that want to drive extraction themselves.
func (o *Orchestrator) Run(ctx context.Context, doc documents.Document) error {
	metrics.IncExtractionStarted()
	startedAt := time.Now()

	data, err := extract.ReadAll(ctx, o.Store, doc.StorageKey)
	if err != nil {
		return fmt.Errorf("read object %s: %w", doc.StorageKey, err)
	}

	// A PDF whose text layer cannot be read is treated the same as a
	// scan with no text layer.
	var text string
	if classify.IsPDF(doc.OriginalFilename) {
		text, _ = extract.PDFText(data)
	}

	strategy := classify.Detect(doc.OriginalFilename, text)
	if strategy == classify.StrategyNone {
		telemetry.Info("extraction.skipped", map[string]any{
			"document_id": doc.ID,
			"filename":    doc.OriginalFilename,
			"reason":      "unsupported file type",
		})
		return nil
	}

	callCtx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	raw, err := runStrategy(callCtx, o.LLM, strategy, doc.OriginalFilename, data, text)
	if err != nil {
		return fmt.Errorf("strategy %s: %w", strategy, err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}

	expiry := result.ExpiryTime()
	if expiry == nil {
		telemetry.Info("extraction.no_expiry", map[string]any{
			"document_id": doc.ID,
			"strategy":    string(strategy),
		})
		metrics.IncExtractionCompleted()
		return nil
	}

	if err := o.Docs.UpdateExpiry(ctx, doc.ID, *expiry); err != nil {
		return fmt.Errorf("store expiry: %w", err)
	}

	if o.Scheduler != nil {
		if err := o.Scheduler.CreateForDocument(ctx, doc.UserID, doc.ID, *expiry); err != nil {
			return fmt.Errorf("schedule reminder: %w", err)
		}
	}

	metrics.IncExtractionCompleted()
	metrics.ObserveExtractionDurationMs(float64(time.Since(startedAt).Milliseconds()))
	telemetry.Info("extraction.completed", map[string]any{
		"document_id": doc.ID,
		"strategy":    string(strategy),
		"item_name":   stringOrEmpty(result.ItemName),
		"expiry_date": expiry.Format("2006-01-02"),
	})
	return nil
}

func (o *Orchestrator) fail(doc documents.Document, err error) {
	metrics.IncExtractionFailed()
	telemetry.Error("extraction.failed", map[string]any{
		"document_id": doc.ID,
		"user_id":     doc.UserID,
		"error":       err.Error(),
	})
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
