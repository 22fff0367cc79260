package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	// SignedURL returns a time-limited URL for direct download when the
	// backend supports it; backends that serve files locally return the
	// storage key unchanged.
	SignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
}
