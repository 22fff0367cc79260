package llm

import (
	"context"
	"errors"
)

// Image is a payload for vision calls, delivered as a base64 data URL.
type Image struct {
	MIMEType string
	DataURL  string
}

// Client abstracts inference providers for warranty extraction.
// Both calls return the provider's free-form text output; callers are
// responsible for parsing it.
type Client interface {
	// Complete sends a system instruction plus document text to a text model.
	Complete(ctx context.Context, system, user string) (string, error)
	// CompleteVision sends a system instruction, a natural-language prompt,
	// and an image to a vision-capable model.
	CompleteVision(ctx context.Context, system, prompt string, image Image) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, system, user string) (string, error) {
	_ = ctx
	_ = system
	_ = user
	return "", ErrNotConfigured
}

// CompleteVision returns ErrNotConfigured.
func (PlaceholderClient) CompleteVision(ctx context.Context, system, prompt string, image Image) (string, error) {
	_ = ctx
	_ = system
	_ = prompt
	_ = image
	return "", ErrNotConfigured
}
