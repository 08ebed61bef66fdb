package retrieval

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"leadscout_backend/internal/search/domain"
)

// ErrNoJSONArray means the response text contained no bracketed JSON array.
var ErrNoJSONArray = errors.New("no JSON array found in model response")

// DecodeLeads parses the model's response text into raw lead records.
//
// The text is not guaranteed to be pure JSON (models wrap arrays in prose or
// markdown fences), so the widest bracketed substring is taken: from the
// first '[' to the last ']'. The result is decoded explicitly before any
// field access; a missing array or a top-level value that is not an array of
// objects is a typed error, never a partial result.
func DecodeLeads(text string) ([]domain.RawLead, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrNoJSONArray
	}

	var records []domain.RawLead
	if err := json.Unmarshal([]byte(text[start:end+1]), &records); err != nil {
		return nil, fmt.Errorf("parse lead array: %w", err)
	}

	return records, nil
}
