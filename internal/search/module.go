// Package search provides the lead search bounded context module.
// This file defines the module that encapsulates all search setup and route
// registration.
package search

import (
	"github.com/redis/go-redis/v9"

	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/pdf"
	"leadscout_backend/internal/search/handler"
	"leadscout_backend/internal/search/history"
	"leadscout_backend/internal/search/retrieval"
	"leadscout_backend/internal/search/service"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/events"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

// Module is the search bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the search module with all its
// dependencies. rdb may be nil when Redis is not configured; history then
// degrades to an empty, non-persistent view.
func NewModule(cfg *config.Config, rdb *redis.Client, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	retriever := retrieval.NewClient(cfg, log)

	var hist *history.Store
	if rdb != nil {
		hist = history.NewStore(rdb, log)
	}

	var pdfGen *pdf.Generator
	if cfg.IsGotenbergEnabled() {
		client := pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		pdfGen = pdf.NewGenerator(client)
	}

	svc := service.New(retriever, hist, pdfGen, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "search"
}

// Service returns the search service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts search routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/search")
	m.handler.RegisterRoutes(group, ctx.SearchRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
