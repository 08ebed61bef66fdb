package retrieval

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/logger"
)

type stubGeminiConfig struct {
	apiKey string
}

func (s stubGeminiConfig) GetGeminiAPIKey() string        { return s.apiKey }
func (s stubGeminiConfig) GetGeminiModel() string         { return "gemini-2.5-flash" }
func (s stubGeminiConfig) GetGeminiFallbackModel() string { return "gemini-2.5-flash-lite" }
func (s stubGeminiConfig) GetGeminiThinkingBudget() int32 { return 2048 }
func (s stubGeminiConfig) GetSearchTargetCount() int      { return 100 }

// generateCall records one model invocation made through the generate seam.
type generateCall struct {
	model  string
	prompt string
	gencfg *genai.GenerateContentConfig
}

func testQuery() domain.SearchQuery {
	return domain.SearchQuery{City: "Pune", Categories: []string{"cafe"}, RadiusKm: 10}
}

// newFakeClient returns a client whose generate calls are served from the
// given responders in order, recording every call.
func newFakeClient(t *testing.T, calls *[]generateCall, responders ...func() (string, error)) *Client {
	t.Helper()

	client := NewClient(stubGeminiConfig{apiKey: "key"}, logger.New("test"))
	client.generate = func(_ context.Context, model, prompt string, gencfg *genai.GenerateContentConfig) (string, error) {
		*calls = append(*calls, generateCall{model: model, prompt: prompt, gencfg: gencfg})
		if len(*calls) > len(responders) {
			t.Fatalf("unexpected generate call %d (model %s)", len(*calls), model)
		}
		return responders[len(*calls)-1]()
	}
	return client
}

func TestFetchLeadsMissingAPIKey(t *testing.T) {
	var calls []generateCall
	client := newFakeClient(t, &calls)
	client.cfg = stubGeminiConfig{apiKey: "   "}

	_, err := client.FetchLeads(context.Background(), testQuery())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no model calls without a credential, got %d", len(calls))
	}
}

func TestFetchLeadsPrimarySuccess(t *testing.T) {
	var calls []generateCall
	client := newFakeClient(t, &calls, func() (string, error) {
		return `[{"name":"Cafe Noor","address":"12 MG Road"}]`, nil
	})

	records, err := client.FetchLeads(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Cafe Noor" {
		t.Fatalf("unexpected records %v", records)
	}
	if len(calls) != 1 {
		t.Fatalf("expected a single primary call, got %d", len(calls))
	}
	if calls[0].model != "gemini-2.5-flash" {
		t.Fatalf("unexpected primary model %q", calls[0].model)
	}
	if len(calls[0].gencfg.Tools) == 0 || calls[0].gencfg.Tools[0].GoogleSearch == nil {
		t.Fatal("primary call must be search-grounded")
	}
}

func TestFetchLeadsPrimaryErrorDegradesToFallback(t *testing.T) {
	var calls []generateCall
	client := newFakeClient(t, &calls,
		func() (string, error) { return "", errors.New("upstream 500") },
		func() (string, error) { return `[{"name":"Backup Bakery","address":"3 FC Road"}]`, nil },
	)

	records, err := client.FetchLeads(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Backup Bakery" {
		t.Fatalf("expected fallback records, got %v", records)
	}
	if len(calls) != 2 {
		t.Fatalf("expected primary then fallback, got %d calls", len(calls))
	}
	if calls[1].model != "gemini-2.5-flash-lite" {
		t.Fatalf("unexpected fallback model %q", calls[1].model)
	}
	if calls[1].gencfg.ResponseMIMEType != "application/json" || calls[1].gencfg.ResponseSchema == nil {
		t.Fatal("fallback call must request schema-constrained JSON")
	}
	if len(calls[1].gencfg.Tools) != 0 {
		t.Fatal("fallback call must not be search-grounded")
	}
}

func TestFetchLeadsMalformedPrimaryDegradesToFallback(t *testing.T) {
	var calls []generateCall
	client := newFakeClient(t, &calls,
		func() (string, error) { return "Sorry, I could not find any businesses.", nil },
		func() (string, error) { return `[{"name":"Backup Bakery","address":"3 FC Road"}]`, nil },
	)

	records, err := client.FetchLeads(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected fallback records, got %v", records)
	}
	if len(calls) != 2 {
		t.Fatalf("expected primary then fallback, got %d calls", len(calls))
	}
}

func TestFetchLeadsFallbackFailureIsEmptyNotError(t *testing.T) {
	var calls []generateCall
	client := newFakeClient(t, &calls,
		func() (string, error) { return "", errors.New("upstream 500") },
		func() (string, error) { return "", errors.New("quota exhausted") },
	)

	records, err := client.FetchLeads(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("fallback failure must be swallowed, got %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil batch, got %v", records)
	}
	if len(calls) != 2 {
		t.Fatalf("expected both paths attempted, got %d calls", len(calls))
	}
}
