package extraction

import (
	"context"
	"encoding/base64"
	"fmt"

	"warranty-backend/internal/classify"
	"warranty-backend/internal/extract"
	"warranty-backend/internal/llm"
)

// runStrategy performs one model call for the chosen strategy and
// returns the raw model response.
func runStrategy(ctx context.Context, client llm.Client, strategy classify.Strategy, filename string, data []byte, text string) (string, error) {
	system := llm.ExtractionPrompt()

	switch strategy {
	case classify.StrategyText:
		return client.Complete(ctx, system, text)

	case classify.StrategyScannedPDF:
		page, err := extract.RenderFirstPagePNG(data)
		if err != nil {
			return "", fmt.Errorf("render pdf page: %w", err)
		}
		return client.CompleteVision(ctx, system, visionPrompt, llm.Image{
			MIMEType: "image/png",
			DataURL:  dataURL("image/png", page),
		})

	case classify.StrategyImage:
		mime := classify.ImageMIME(filename)
		return client.CompleteVision(ctx, system, visionPrompt, llm.Image{
			MIMEType: mime,
			DataURL:  dataURL(mime, data),
		})

	default:
		return "", fmt.Errorf("no extraction strategy for %q", filename)
	}
}

const visionPrompt = "Extract the warranty details from this document image."

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
