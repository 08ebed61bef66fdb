// Package transport defines the wire DTOs of the search context.
package transport

import "leadscout_backend/internal/search/domain"

// Sort fields accepted by the search endpoint.
type SortField string

const (
	SortByName     SortField = "name"
	SortByRating   SortField = "rating"
	SortByReviews  SortField = "userRatingsTotal"
	SortByDistance SortField = "distance"
)

// Sort directions.
const (
	SortDirAsc  = "asc"
	SortDirDesc = "desc"
)

// Request DTOs
type SearchRequest struct {
	City       string         `json:"city" validate:"required,min=1,max=120"`
	Categories []string       `json:"categories" validate:"required,min=1,dive,min=1,max=80"`
	RadiusKm   float64        `json:"radiusKm" validate:"required,gte=1,lte=100"`
	Origin     *domain.LatLng `json:"origin,omitempty"`
	SortBy     SortField      `json:"sortBy,omitempty" validate:"omitempty,oneof=name rating userRatingsTotal distance"`
	SortDir    string         `json:"sortDir,omitempty" validate:"omitempty,oneof=asc desc"`
}

type ExportRequest struct {
	Leads []domain.Lead `json:"leads" validate:"required,min=1"`
}

// Response DTOs
type SearchResponse struct {
	Leads   []domain.Lead `json:"leads"`
	Count   int           `json:"count"`
	Message string        `json:"message,omitempty"`
}

type HistoryResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
}
