package reminders

import (
	"context"
	"testing"
	"time"

	"warranty-backend/internal/documents"
	"warranty-backend/internal/users"
)

func testFixtures(t *testing.T) (*MemoryRepo, *documents.MemoryRepo, *users.MemoryRepo) {
	t.Helper()
	docs := documents.NewMemoryRepo()
	userRepo := users.NewMemoryRepo()
	return NewMemoryRepo(docs, userRepo), docs, userRepo
}

func seedDocument(t *testing.T, docs *documents.MemoryRepo, userRepo *users.MemoryRepo, docID string, expiry time.Time) {
	t.Helper()
	ctx := context.Background()
	if err := userRepo.Upsert(ctx, users.User{ID: "user-1", Email: "owner@example.com", Name: "Owner"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	doc := documents.Document{
		ID:               docID,
		UserID:           "user-1",
		FileName:         docID + ".pdf",
		OriginalFilename: "fridge-warranty.pdf",
		StorageKey:       "user-1/" + docID + ".pdf",
		CreatedAt:        time.Now().UTC(),
	}
	if err := docs.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	if err := docs.UpdateExpiry(ctx, docID, expiry); err != nil {
		t.Fatalf("seed expiry: %v", err)
	}
}

func pendingFor(t *testing.T, repo *MemoryRepo, docID string) Reminder {
	t.Helper()
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, reminder := range repo.data {
		if reminder.DocumentID == docID {
			return reminder
		}
	}
	t.Fatalf("no reminder for document %s", docID)
	return Reminder{}
}

func TestCreateForDocumentFarExpiryUsesSevenDayStage(t *testing.T) {
	repo, docs, userRepo := testFixtures(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 30)
	seedDocument(t, docs, userRepo, "doc-1", expiry)

	sched := &Scheduler{Repo: repo, Now: func() time.Time { return now }}
	if err := sched.CreateForDocument(context.Background(), "user-1", "doc-1", expiry); err != nil {
		t.Fatalf("CreateForDocument: %v", err)
	}

	reminder := pendingFor(t, repo, "doc-1")
	if reminder.Status != StatusPending {
		t.Fatalf("expected pending, got %s", reminder.Status)
	}
	if want := expiry.AddDate(0, 0, -7); !reminder.RemindAt.Equal(want) {
		t.Fatalf("expected remind_at %v, got %v", want, reminder.RemindAt)
	}
}

func TestCreateForDocumentMidRangeUsesThreeDayStage(t *testing.T) {
	repo, docs, userRepo := testFixtures(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 5)
	seedDocument(t, docs, userRepo, "doc-1", expiry)

	sched := &Scheduler{Repo: repo, Now: func() time.Time { return now }}
	if err := sched.CreateForDocument(context.Background(), "user-1", "doc-1", expiry); err != nil {
		t.Fatalf("CreateForDocument: %v", err)
	}

	reminder := pendingFor(t, repo, "doc-1")
	if want := expiry.AddDate(0, 0, -3); !reminder.RemindAt.Equal(want) {
		t.Fatalf("expected remind_at %v, got %v", want, reminder.RemindAt)
	}
}

func TestCreateForDocumentImminentExpiryRemindsNow(t *testing.T) {
	repo, docs, userRepo := testFixtures(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 2)
	seedDocument(t, docs, userRepo, "doc-1", expiry)

	sched := &Scheduler{Repo: repo, Now: func() time.Time { return now }}
	if err := sched.CreateForDocument(context.Background(), "user-1", "doc-1", expiry); err != nil {
		t.Fatalf("CreateForDocument: %v", err)
	}

	reminder := pendingFor(t, repo, "doc-1")
	if !reminder.RemindAt.Equal(now) {
		t.Fatalf("expected remind_at now, got %v", reminder.RemindAt)
	}
}

func TestCreateForDocumentPastExpiryCreatesNothing(t *testing.T) {
	repo, _, _ := testFixtures(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	sched := &Scheduler{Repo: repo, Now: func() time.Time { return now }}
	if err := sched.CreateForDocument(context.Background(), "user-1", "doc-1", now.AddDate(0, 0, -1)); err != nil {
		t.Fatalf("CreateForDocument: %v", err)
	}

	exists, err := repo.ExistsForDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ExistsForDocument: %v", err)
	}
	if exists {
		t.Fatalf("expected no reminder for past expiry")
	}
}

func TestCreateForDocumentIsIdempotent(t *testing.T) {
	repo, docs, userRepo := testFixtures(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 30)
	seedDocument(t, docs, userRepo, "doc-1", expiry)

	sched := &Scheduler{Repo: repo, Now: func() time.Time { return now }}
	for i := 0; i < 3; i++ {
		if err := sched.CreateForDocument(context.Background(), "user-1", "doc-1", expiry); err != nil {
			t.Fatalf("CreateForDocument: %v", err)
		}
	}

	repo.mu.RLock()
	count := len(repo.data)
	repo.mu.RUnlock()
	if count != 1 {
		t.Fatalf("expected exactly one reminder, got %d", count)
	}
}
