package documents

import "time"

// Document represents an uploaded warranty document owned by a user.
// ExpiryDate stays nil until background extraction succeeds, and is written
// at most once.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExpiryDate       *time.Time
	CreatedAt        time.Time
}
