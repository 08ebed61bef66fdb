// Package service orchestrates lead searches: retrieval, normalization,
// distance annotation, history bookkeeping and export rendering.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/pdf"
	"leadscout_backend/internal/search/domain"
	"leadscout_backend/internal/search/geo"
	"leadscout_backend/internal/search/history"
	"leadscout_backend/internal/search/normalize"
	"leadscout_backend/internal/search/retrieval"
	"leadscout_backend/internal/search/transport"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"
)

// degradedMessage is returned when a search settles without results. It is
// deliberately generic: the client cannot tell a thin market from an upstream
// outage, and should not retry aggressively on either.
const degradedMessage = "No leads found. The search service may be temporarily degraded; try again in a few minutes."

// progressInterval is the heartbeat period for long-running retrievals.
const progressInterval = 5 * time.Second

// Service implements the search use cases.
type Service struct {
	retriever retrieval.Retriever
	history   *history.Store
	pdfGen    *pdf.Generator
	bus       events.Bus
	log       *logger.Logger

	flight singleflight.Group
}

// New wires the search service. hist and pdfGen may be nil when their backing
// services are not configured; the corresponding operations then no-op or
// report unavailability.
func New(retriever retrieval.Retriever, hist *history.Store, pdfGen *pdf.Generator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		retriever: retriever,
		history:   hist,
		pdfGen:    pdfGen,
		bus:       bus,
		log:       log,
	}
}

// Search runs one lead search end to end. Concurrent requests that need the
// same upstream batch share a single retrieval; everything downstream of
// retrieval is computed per request, so each caller keeps its own origin and
// sort order.
func (s *Service) Search(ctx context.Context, clientID string, req transport.SearchRequest) (transport.SearchResponse, error) {
	query := domain.SearchQuery{
		City:       req.City,
		Categories: req.Categories,
		RadiusKm:   req.RadiusKm,
	}
	return s.search(ctx, clientID, query, req)
}

// fetchShared collapses concurrent identical retrievals. The key covers every
// field the upstream request depends on; origin and sort are per-caller and
// applied after retrieval, so they stay out of the key.
func (s *Service) fetchShared(ctx context.Context, clientID string, query domain.SearchQuery) ([]domain.RawLead, error) {
	key := fmt.Sprintf("%s|%s|%g", clientID, query.HistoryKey(), query.RadiusKm)
	result, err, _ := s.flight.Do(key, func() (any, error) {
		return s.retriever.FetchLeads(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.RawLead), nil
}

func (s *Service) search(ctx context.Context, clientID string, query domain.SearchQuery, req transport.SearchRequest) (transport.SearchResponse, error) {
	started := time.Now()
	stopProgress := s.progressHeartbeat(query)
	defer stopProgress()
	raws, err := s.fetchShared(ctx, clientID, query)
	if err != nil {
		if errors.Is(err, retrieval.ErrMissingAPIKey) {
			return transport.SearchResponse{}, apperr.Unavailable(err.Error())
		}
		return transport.SearchResponse{}, err
	}

	leads := normalize.Batch(raws, started)
	leads = geo.Annotate(leads, req.Origin)
	sortLeads(leads, req.SortBy, req.SortDir)

	durationMs := time.Since(started).Milliseconds()
	status := "ok"
	if len(leads) == 0 {
		status = "degraded"
	}
	s.log.SearchEvent(query.City, query.Categories, len(leads), float64(durationMs), status == "degraded")

	if len(leads) > 0 && s.history != nil {
		entry := domain.HistoryEntry{
			ID:          leads[0].ID,
			Query:       query,
			Timestamp:   started.UTC().Format(time.RFC3339),
			ResultCount: len(leads),
		}
		if err := s.history.Record(ctx, clientID, entry); err != nil {
			s.log.Warn("history record failed", "clientId", clientID, "error", err)
		}
	}

	s.bus.Publish(ctx, events.SearchCompleted{
		BaseEvent:   events.NewBaseEvent(),
		ClientID:    clientID,
		City:        query.City,
		Categories:  query.Categories,
		RadiusKm:    query.RadiusKm,
		ResultCount: len(leads),
		Status:      status,
		DurationMs:  durationMs,
	})

	resp := transport.SearchResponse{
		Leads: leads,
		Count: len(leads),
	}
	if len(leads) == 0 {
		resp.Leads = []domain.Lead{}
		resp.Message = degradedMessage
	}
	return resp, nil
}

// progressHeartbeat logs periodically while a search is in flight. The
// returned stop function must be called exactly once; search defers it so the
// goroutine cannot outlive a panicking pipeline.
func (s *Service) progressHeartbeat(query domain.SearchQuery) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.log.Info("search in progress",
					"city", query.City,
					"elapsedMs", time.Since(start).Milliseconds(),
				)
			}
		}
	}()
	return func() { close(stop) }
}

// History returns the client's stored searches, newest first.
func (s *Service) History(ctx context.Context, clientID string) []domain.HistoryEntry {
	if s.history == nil {
		return []domain.HistoryEntry{}
	}
	return s.history.Load(ctx, clientID)
}

// ClearHistory removes the client's stored searches.
func (s *Service) ClearHistory(ctx context.Context, clientID string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx, clientID)
}

// ExportPDF renders the given leads as a PDF document.
func (s *Service) ExportPDF(ctx context.Context, leads []domain.Lead) ([]byte, error) {
	if s.pdfGen == nil {
		return nil, apperr.Unavailable("PDF export is not configured")
	}
	return s.pdfGen.GeneratePDF(ctx, leads)
}
