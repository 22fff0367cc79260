package classify

import (
	"strings"
	"testing"
)

func TestDetectPDFTextThreshold(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Strategy
	}{
		{"at threshold", strings.Repeat("a", MinTextLength), StrategyText},
		{"above threshold", strings.Repeat("a", 5000), StrategyText},
		{"below threshold", strings.Repeat("a", MinTextLength-1), StrategyScannedPDF},
		{"no text layer", "", StrategyScannedPDF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect("warranty.pdf", tc.text); got != tc.want {
				t.Fatalf("Detect(pdf, %d chars) = %s, want %s", len(tc.text), got, tc.want)
			}
		})
	}
}

func TestDetectCountsCharactersNotBytes(t *testing.T) {
	// 40 two-byte characters is 80 bytes of UTF-8 but only half the
	// character threshold, so this text layer is too thin to trust.
	text := strings.Repeat("ü", MinTextLength/2)
	if got := Detect("warranty.pdf", text); got != StrategyScannedPDF {
		t.Fatalf("Detect(pdf, %d bytes / %d chars) = %s, want %s",
			len(text), MinTextLength/2, got, StrategyScannedPDF)
	}
	if got := Detect("warranty.pdf", strings.Repeat("ü", MinTextLength)); got != StrategyText {
		t.Fatalf("expected %s for %d multi-byte chars, got %s", StrategyText, MinTextLength, got)
	}
}

func TestDetectImageExtensions(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.gif"} {
		if got := Detect(name, ""); got != StrategyImage {
			t.Fatalf("Detect(%s) = %s, want image", name, got)
		}
	}
}

func TestDetectUnsupported(t *testing.T) {
	for _, name := range []string{"notes.txt", "report.docx", "archive.zip", "noext"} {
		if got := Detect(name, strings.Repeat("a", 1000)); got != StrategyNone {
			t.Fatalf("Detect(%s) = %s, want none", name, got)
		}
	}
}

func TestImageMIME(t *testing.T) {
	if got := ImageMIME("photo.PNG"); got != "image/png" {
		t.Fatalf("ImageMIME(photo.PNG) = %s", got)
	}
	if got := ImageMIME("photo.bmp"); got != "image/jpeg" {
		t.Fatalf("ImageMIME fallback = %s, want image/jpeg", got)
	}
}
