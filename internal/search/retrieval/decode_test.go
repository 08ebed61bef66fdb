package retrieval

import (
	"errors"
	"testing"
)

func TestDecodeLeadsPlainArray(t *testing.T) {
	records, err := DecodeLeads(`[{"name":"Cafe Noor"},{"name":"Other"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "Cafe Noor" {
		t.Fatalf("unexpected first record: %v", records[0])
	}
}

func TestDecodeLeadsProseWrapped(t *testing.T) {
	text := "Here are the businesses I found:\n```json\n[{\"name\":\"Cafe Noor\"}]\n```\nLet me know if you need more."

	records, err := DecodeLeads(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestDecodeLeadsNoArray(t *testing.T) {
	_, err := DecodeLeads("I could not find any businesses matching the query.")
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("expected ErrNoJSONArray, got %v", err)
	}
}

func TestDecodeLeadsMalformedArray(t *testing.T) {
	_, err := DecodeLeads(`[{"name": "Cafe Noor"`)
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("expected ErrNoJSONArray for unterminated array, got %v", err)
	}

	_, err = DecodeLeads(`["just", "strings"]`)
	if err == nil {
		t.Fatal("expected error for non-object array elements")
	}
}

func TestDecodeLeadsEmptyArray(t *testing.T) {
	records, err := DecodeLeads("The result is [] today.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty slice, got %d records", len(records))
	}
}
