package retrieval

import (
	"strings"
	"testing"

	"leadscout_backend/internal/search/domain"
)

func TestBuildPrimaryPrompt(t *testing.T) {
	query := domain.SearchQuery{
		City:       "Pune",
		Categories: []string{"cafe", "bakery"},
		RadiusKm:   25,
	}

	prompt := BuildPrimaryPrompt(query, 100)

	for _, fragment := range []string{"100", "Pune", "25 km", "cafe, bakery", "JSON array"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to contain %q", fragment)
		}
	}
	if !strings.Contains(prompt, "Never invent a number") {
		t.Fatal("expected phone-invention prohibition")
	}
	if !strings.Contains(prompt, "1234567890") {
		t.Fatal("expected placeholder sequence examples")
	}
}

func TestBuildFallbackPrompt(t *testing.T) {
	query := domain.SearchQuery{City: "Pune", Categories: []string{"cafe"}}

	prompt := BuildFallbackPrompt(query, 20)

	if !strings.Contains(prompt, "20") || !strings.Contains(prompt, "Pune") {
		t.Fatalf("unexpected fallback prompt: %s", prompt)
	}
	if strings.Contains(prompt, "Google Search") {
		t.Fatal("fallback prompt must not reference search grounding")
	}
}
