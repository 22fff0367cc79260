package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document with a null expiry date.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    file_name,
    original_filename,
    mime_type,
    size_bytes,
    storage_provider,
    storage_key,
    expiry_date,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9)`

	originalName := doc.OriginalFilename
	if originalName == "" {
		originalName = doc.FileName
	}
	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		originalName,
		doc.MimeType,
		doc.SizeBytes,
		storageProvider,
		doc.StorageKey,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, file_name, original_filename, mime_type, size_bytes, storage_provider, storage_key, expiry_date, created_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var doc Document
	var mimeType sql.NullString
	var storageProvider sql.NullString
	var expiryDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.OriginalFilename,
		&mimeType,
		&doc.SizeBytes,
		&storageProvider,
		&doc.StorageKey,
		&expiryDate,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if mimeType.Valid {
		doc.MimeType = mimeType.String
	}
	if storageProvider.Valid {
		doc.StorageProvider = storageProvider.String
	}
	if expiryDate.Valid {
		doc.ExpiryDate = &expiryDate.Time
	}
	return doc, nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, original_filename, mime_type, size_bytes, storage_provider, storage_key, expiry_date, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var mimeType sql.NullString
		var storageProvider sql.NullString
		var expiryDate sql.NullTime
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.FileName,
			&doc.OriginalFilename,
			&mimeType,
			&doc.SizeBytes,
			&storageProvider,
			&doc.StorageKey,
			&expiryDate,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		if mimeType.Valid {
			doc.MimeType = mimeType.String
		}
		if storageProvider.Valid {
			doc.StorageProvider = storageProvider.String
		}
		if expiryDate.Valid {
			doc.ExpiryDate = &expiryDate.Time
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateExpiry stores the extracted expiry date. The expiry is written at
// most once; rows that already carry one are not touched.
func (r *PGRepo) UpdateExpiry(ctx context.Context, documentID string, expiryDate time.Time) error {
	const query = `
UPDATE documents
SET expiry_date = $1
WHERE id = $2 AND expiry_date IS NULL`
	_, err := r.DB.ExecContext(ctx, query, expiryDate, documentID)
	return err
}

// Delete removes a document row; reminders cascade at the schema level.
func (r *PGRepo) Delete(ctx context.Context, userId, documentID string) error {
	const query = `
DELETE FROM documents
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, documentID)
	if err != nil {
		return err
	}
	deleted, _ := res.RowsAffected()
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

var _ DocumentsRepo = (*PGRepo)(nil)
