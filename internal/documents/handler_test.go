package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"warranty-backend/internal/bootstrap"
	"warranty-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func uploadFile(t *testing.T, router *gin.Engine, name string, contents []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(contents); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDocumentsUploadRespondsBeforeExtraction(t *testing.T) {
	app := buildTestApp(t)

	resp := uploadFile(t, app.Router, "fridge-receipt.pdf", []byte("%PDF-1.4 not really a pdf"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID string  `json:"documentId"`
		Original   string  `json:"originalFilename"`
		ExpiryDate *string `json:"expiryDate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	if created.Original != "fridge-receipt.pdf" {
		t.Fatalf("expected original filename, got %q", created.Original)
	}
	if created.ExpiryDate != nil {
		t.Fatalf("expected null expiryDate right after upload, got %q", *created.ExpiryDate)
	}
}

func TestDocumentsListNewestFirst(t *testing.T) {
	app := buildTestApp(t)

	for _, name := range []string{"first.txt", "second.txt"} {
		if resp := uploadFile(t, app.Router, name, []byte("warranty text")); resp.Code != http.StatusCreated {
			t.Fatalf("upload %s: expected 201, got %d", name, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var docs []struct {
		DocumentID string `json:"documentId"`
		Original   string `json:"originalFilename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestDocumentsDeleteRemovesDocument(t *testing.T) {
	app := buildTestApp(t)

	resp := uploadFile(t, app.Router, "toaster.txt", []byte("warranty text"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d", resp.Code)
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+created.DocumentID, nil)
	addGuestHeader(reqDel)
	respDel := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", respDel.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", respGet.Code)
	}
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}
