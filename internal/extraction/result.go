package extraction

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Result holds the fields pulled out of a warranty document. Any field
// the model could not determine is nil.
type Result struct {
	PurchaseDate *string `json:"purchase_date"`
	ItemName     *string `json:"item_name"`
	ExpiryDate   *string `json:"expiry_date"`
}

// ExpiryTime parses the expiry date, if present.
func (r Result) ExpiryTime() *time.Time {
	if r.ExpiryDate == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *r.ExpiryDate)
	if err != nil {
		return nil
	}
	return &t
}

// ErrNoJSON indicates the model response contained no parseable JSON object.
var ErrNoJSON = errors.New("no json object in model response")

// ParseResult turns a raw model response into a Result. Models wrap
// JSON in code fences or chat fluff often enough that we cut down to
// the outermost braces before unmarshalling. Fields that are missing,
// mistyped or not ISO dates are coerced to nil rather than rejected.
func ParseResult(raw string) (Result, error) {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return Result{}, ErrNoJSON
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &fields); err != nil {
		return Result{}, err
	}

	return Result{
		PurchaseDate: coerceDate(fields["purchase_date"]),
		ItemName:     coerceString(fields["item_name"]),
		ExpiryDate:   coerceDate(fields["expiry_date"]),
	}, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func coerceString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

func coerceDate(v any) *string {
	s := coerceString(v)
	if s == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *s); err != nil {
		return nil
	}
	return s
}
