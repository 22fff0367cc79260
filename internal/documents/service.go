package documents

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"warranty-backend/internal/shared/storage/object"
	"warranty-backend/internal/shared/telemetry"
	"warranty-backend/internal/users"
)

// ExtractionStarter kicks off background extraction for a freshly
// uploaded document. Implementations must not block the caller.
type ExtractionStarter interface {
	Start(doc Document)
}

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            DocumentsRepo
	Users           users.Repo
	Extractor       ExtractionStarter
	StorageProvider string
	SignedURLTTL    time.Duration
}

// Upload saves the file to object storage, records the document and
// starts extraction in the background. The document is returned before
// extraction finishes; its expiry date fills in later.
func (s *Service) Upload(ctx context.Context, owner users.User, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	// The document row references the user row, so make sure it exists.
	if s.Users != nil {
		if err := s.Users.Upsert(ctx, owner); err != nil {
			return Document{}, err
		}
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, owner.ID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:               uuid.NewString(),
		UserID:           owner.ID,
		FileName:         filepath.Base(storageKey),
		OriginalFilename: fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageProvider:  s.StorageProvider,
		StorageKey:       storageKey,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	if s.Extractor != nil {
		s.Extractor.Start(doc)
	}

	return doc, nil
}

// Get returns a single document by ID.
func (s *Service) Get(ctx context.Context, userId, documentID string) (DocumentResponse, error) {
	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		return DocumentResponse{}, err
	}
	return toResponse(doc, s.fileURL(ctx, doc)), nil
}

// List returns documents for a user, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]DocumentResponse, error) {
	docs, err := s.Repo.ListByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc, s.fileURL(ctx, doc)))
	}
	return out, nil
}

// Delete removes the stored object and the document row. Reminders
// attached to the document are removed by the database cascade.
func (s *Service) Delete(ctx context.Context, userId, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		// The row is the source of truth; a stale object is
		// harmless, so log and keep going.
		telemetry.Error("document object delete failed", map[string]any{
			"documentId": documentID,
			"error":      err.Error(),
		})
	}

	return s.Repo.Delete(ctx, userId, documentID)
}

func (s *Service) fileURL(ctx context.Context, doc Document) string {
	url, err := s.Store.SignedURL(ctx, doc.StorageKey, s.SignedURLTTL)
	if err != nil {
		telemetry.Error("signed url failed", map[string]any{
			"documentId": doc.ID,
			"error":      err.Error(),
		})
		return ""
	}
	return url
}
