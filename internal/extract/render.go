package extract

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// renderDPI trades raster fidelity against payload size for the vision call.
const renderDPI = 144

// RenderFirstPagePNG rasterizes the first page of a PDF to PNG bytes.
// Used for scanned PDFs that carry no usable text layer.
func RenderFirstPagePNG(data []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("pdf render open: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf render: document has no pages")
	}

	img, err := doc.ImageDPI(0, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("pdf render page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("pdf render encode: %w", err)
	}
	return buf.Bytes(), nil
}
