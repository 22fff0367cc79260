package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID       string    `json:"documentId"`
	OriginalFilename string    `json:"originalFilename"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"sizeBytes"`
	FileURL          string    `json:"fileUrl,omitempty"`
	ExpiryDate       *string   `json:"expiryDate"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func toResponse(doc Document, fileURL string) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:       doc.ID,
		OriginalFilename: doc.OriginalFilename,
		MimeType:         doc.MimeType,
		SizeBytes:        doc.SizeBytes,
		FileURL:          fileURL,
		UploadedAt:       doc.CreatedAt,
	}
	if doc.ExpiryDate != nil {
		formatted := doc.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &formatted
	}
	return resp
}
