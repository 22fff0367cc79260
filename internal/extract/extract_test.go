package extract

import (
	"bytes"
	"context"
	"testing"

	"warranty-backend/internal/shared/storage/object/local"
)

func TestReadAllRoundTrip(t *testing.T) {
	store := local.New(t.TempDir())
	payload := []byte("warranty terms and conditions")

	key, _, _, err := store.Save(context.Background(), "user-1", "terms.txt", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := ReadAll(context.Background(), store, key)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("expected %q, got %q", payload, data)
	}
}

func TestReadAllMissingObject(t *testing.T) {
	store := local.New(t.TempDir())
	if _, err := ReadAll(context.Background(), store, "user-1/missing.pdf"); err == nil {
		t.Fatalf("expected error for missing object")
	}
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	if _, err := PDFText([]byte("not a pdf at all")); err == nil {
		t.Fatalf("expected error for non-pdf bytes")
	}
}
