package extraction

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseResultPlainJSON(t *testing.T) {
	raw := `{"purchase_date":"2025-01-10","item_name":"Samsung Fridge","expiry_date":"2027-01-10"}`

	result, err := ParseResult(raw)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.PurchaseDate == nil || *result.PurchaseDate != "2025-01-10" {
		t.Fatalf("unexpected purchase date: %v", result.PurchaseDate)
	}
	if result.ItemName == nil || *result.ItemName != "Samsung Fridge" {
		t.Fatalf("unexpected item name: %v", result.ItemName)
	}
	expiry := result.ExpiryTime()
	if expiry == nil || expiry.Format("2006-01-02") != "2027-01-10" {
		t.Fatalf("unexpected expiry: %v", expiry)
	}
}

func TestParseResultStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"purchase_date\": null, \"item_name\": \"Laptop\", \"expiry_date\": \"2026-06-01\"}\n```"

	result, err := ParseResult(raw)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.PurchaseDate != nil {
		t.Fatalf("expected nil purchase date, got %q", *result.PurchaseDate)
	}
	if result.ExpiryDate == nil || *result.ExpiryDate != "2026-06-01" {
		t.Fatalf("unexpected expiry date: %v", result.ExpiryDate)
	}
}

func TestParseResultSurroundingChatter(t *testing.T) {
	raw := "Here is the extracted data:\n{\"purchase_date\":\"2025-02-01\",\"item_name\":\"TV\",\"expiry_date\":\"2026-02-01\"}\nLet me know if you need anything else."

	result, err := ParseResult(raw)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.ItemName == nil || *result.ItemName != "TV" {
		t.Fatalf("unexpected item name: %v", result.ItemName)
	}
}

func TestParseResultCoercesBadFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"non-iso date", `{"purchase_date":"10/01/2025","item_name":"Fridge","expiry_date":"sometime in 2027"}`},
		{"wrong types", `{"purchase_date":20250110,"item_name":42,"expiry_date":false}`},
		{"literal null strings", `{"purchase_date":"null","item_name":"","expiry_date":"NULL"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseResult(tc.raw)
			if err != nil {
				t.Fatalf("ParseResult: %v", err)
			}
			if result.PurchaseDate != nil || result.ExpiryDate != nil {
				t.Fatalf("expected dates coerced to nil, got %+v", result)
			}
			if result.ExpiryTime() != nil {
				t.Fatalf("expected nil expiry time")
			}
		})
	}
}

func TestParseResultNoJSON(t *testing.T) {
	_, err := ParseResult("I could not find any warranty information in this document.")
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestResultExpiryTimeNilOnMissing(t *testing.T) {
	r := Result{ItemName: strPtr("Fridge")}
	if r.ExpiryTime() != nil {
		t.Fatalf("expected nil expiry time for missing date")
	}
}
