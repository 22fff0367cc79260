package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warranty-backend/internal/llm"
)

const defaultAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// Low temperature keeps the extraction output deterministic; the response is
// parsed as strict JSON downstream.
const (
	requestTemperature = 0.1
	requestMaxTokens   = 512
)

// Client implements llm.Client using the Groq OpenAI-compatible
// chat-completions API. A cheap text model handles documents with a usable
// text layer; a vision model handles scans and photos.
type Client struct {
	apiKey      string
	textModel   string
	visionModel string
	apiURL      string
	httpClient  *http.Client
}

// NewClient constructs a Groq client.
func NewClient(apiKey, textModel, visionModel string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if strings.TrimSpace(textModel) == "" || strings.TrimSpace(visionModel) == "" {
		return nil, fmt.Errorf("LLM_TEXT_MODEL and LLM_VISION_MODEL are required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:      apiKey,
		textModel:   textModel,
		visionModel: visionModel,
		apiURL:      defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends document text to the text model.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.chat(ctx, c.textModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

// CompleteVision sends an image plus prompt to the vision model.
func (c *Client) CompleteVision(ctx context.Context, system, prompt string, image llm.Image) (string, error) {
	return c.chat(ctx, c.visionModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: image.DataURL}},
		}},
	})
}

func (c *Client) chat(ctx context.Context, model string, messages []chatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("groq request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("groq response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("groq error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("groq response empty content")
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
