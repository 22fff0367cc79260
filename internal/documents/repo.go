package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Document, error)
	// UpdateExpiry sets the expiry date once; documents that already have an
	// expiry date are left untouched.
	UpdateExpiry(ctx context.Context, documentID string, expiryDate time.Time) error
	Delete(ctx context.Context, userId, documentID string) error
}
