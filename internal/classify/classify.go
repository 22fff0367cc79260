package classify

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Strategy identifies which extraction pipeline should handle a document.
type Strategy string

const (
	// StrategyText sends extracted PDF text to the text model.
	StrategyText Strategy = "text"
	// StrategyScannedPDF renders the first PDF page and sends it to the vision model.
	StrategyScannedPDF Strategy = "scanned-pdf"
	// StrategyImage sends the image bytes to the vision model.
	StrategyImage Strategy = "image"
	// StrategyNone means the file type is unsupported and no extraction runs.
	StrategyNone Strategy = "none"
)

// MinTextLength is the minimum number of extracted characters for a PDF to be
// considered text-based. Below this the PDF is presumed to be a scan with no
// usable text layer, and the far more expensive vision path is used instead.
const MinTextLength = 80

var imageMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// IsPDF reports whether the filename has a .pdf extension.
func IsPDF(filename string) bool {
	return ext(filename) == ".pdf"
}

// IsImage reports whether the filename has a supported image extension.
func IsImage(filename string) bool {
	_, ok := imageMIMEs[ext(filename)]
	return ok
}

// ImageMIME returns the MIME type for a supported image filename.
// Unknown extensions fall back to image/jpeg.
func ImageMIME(filename string) string {
	if mime, ok := imageMIMEs[ext(filename)]; ok {
		return mime
	}
	return "image/jpeg"
}

// Detect picks the extraction strategy for a file. pdfText is the plain text
// extractable from the file and is only consulted for PDFs. The threshold
// counts characters, not bytes, so multi-byte text layers are not misrouted.
func Detect(filename, pdfText string) Strategy {
	switch {
	case IsImage(filename):
		return StrategyImage
	case IsPDF(filename):
		if utf8.RuneCountInString(pdfText) >= MinTextLength {
			return StrategyText
		}
		return StrategyScannedPDF
	default:
		return StrategyNone
	}
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
