// Package retrieval fetches raw lead records from the Gemini API.
//
// The client issues one search-grounded primary request per search. Any
// primary failure except a missing credential degrades to a fallback request
// without search grounding; fallback failures are swallowed and surface as an
// empty batch.
package retrieval

import (
	"context"
	"errors"
	"strings"
	"sync"

	"google.golang.org/genai"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
)

// ErrMissingAPIKey is returned before any network call when no Gemini
// credential is configured. It is the only retrieval error callers ever see.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// fallbackTarget is the smaller record count requested by the degraded path.
const fallbackTarget = 20

// Retriever fetches raw lead records for a query.
type Retriever interface {
	FetchLeads(ctx context.Context, query domain.SearchQuery) ([]domain.RawLead, error)
}

// Client implements Retriever against the Gemini API.
type Client struct {
	cfg config.GeminiConfig
	log *logger.Logger

	mu   sync.Mutex
	genc *genai.Client

	// generate issues one model call and returns the response text. It is a
	// field so tests can exercise the degrade transitions without the SDK.
	generate func(ctx context.Context, model, prompt string, gencfg *genai.GenerateContentConfig) (string, error)
}

// NewClient creates a retrieval client. The underlying Gemini client is
// created lazily so that a missing credential is detected per search, before
// any network traffic.
func NewClient(cfg config.GeminiConfig, log *logger.Logger) *Client {
	c := &Client{cfg: cfg, log: log}
	c.generate = c.generateContent
	return c
}

// FetchLeads returns raw records for the query. The error return is non-nil
// only for a missing credential; every other failure mode degrades to fewer
// or zero records.
func (c *Client) FetchLeads(ctx context.Context, query domain.SearchQuery) ([]domain.RawLead, error) {
	if strings.TrimSpace(c.cfg.GetGeminiAPIKey()) == "" {
		return nil, ErrMissingAPIKey
	}

	records, err := c.primary(ctx, query)
	if err == nil {
		return records, nil
	}
	c.log.Warn("primary lead retrieval failed, degrading",
		"city", query.City,
		"error", err,
	)

	records, err = c.fallback(ctx, query)
	if err != nil {
		c.log.Warn("fallback lead retrieval failed, returning empty batch",
			"city", query.City,
			"error", err,
		)
		return []domain.RawLead{}, nil
	}
	return records, nil
}

// primary issues the search-grounded request with a thinking budget.
func (c *Client) primary(ctx context.Context, query domain.SearchQuery) ([]domain.RawLead, error) {
	prompt := BuildPrimaryPrompt(query, c.cfg.GetSearchTargetCount())
	text, err := c.generate(ctx, c.cfg.GetGeminiModel(), prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(c.cfg.GetGeminiThinkingBudget()),
		},
	})
	if err != nil {
		return nil, err
	}

	return DecodeLeads(text)
}

// fallback issues the degraded request: no search tool, smaller target,
// schema-constrained JSON decoding.
func (c *Client) fallback(ctx context.Context, query domain.SearchQuery) ([]domain.RawLead, error) {
	prompt := BuildFallbackPrompt(query, fallbackTarget)
	text, err := c.generate(ctx, c.cfg.GetGeminiFallbackModel(), prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   leadArraySchema(),
	})
	if err != nil {
		return nil, err
	}

	return DecodeLeads(text)
}

// generateContent is the real model call behind the generate seam.
func (c *Client) generateContent(ctx context.Context, model, prompt string, gencfg *genai.GenerateContentConfig) (string, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), gencfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genc != nil {
		return c.genc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c.genc = client
	return client, nil
}

// leadArraySchema is the loose fallback shape: only name and address are
// required, everything else is best-effort.
func leadArraySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":             {Type: genai.TypeString},
				"address":          {Type: genai.TypeString},
				"lat":              {Type: genai.TypeNumber},
				"lng":              {Type: genai.TypeNumber},
				"phone":            {Type: genai.TypeString},
				"website":          {Type: genai.TypeString},
				"email":            {Type: genai.TypeString},
				"rating":           {Type: genai.TypeNumber},
				"userRatingsTotal": {Type: genai.TypeInteger},
				"establishedDate":  {Type: genai.TypeString},
			},
			Required: []string{"name", "address"},
		},
	}
}
