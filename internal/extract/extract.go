package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"warranty-backend/internal/shared/storage/object"
)

// ReadAll fetches a stored object fully into memory.
// Warranty documents are small (bounded by the upload size limit), so
// buffering the whole file keeps the strategy code simple.
func ReadAll(ctx context.Context, store object.ObjectStore, storageKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("open object key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read object key=%s: %w", storageKey, err)
	}
	return raw, nil
}

// PDFText extracts the plain text layer from a PDF.
func PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text read: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
