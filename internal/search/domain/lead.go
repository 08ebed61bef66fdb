// Package domain holds the canonical types of the lead search context.
package domain

import "strings"

// SearchQuery identifies one lead search request. It is immutable once
// submitted.
type SearchQuery struct {
	City       string   `json:"city"`
	Categories []string `json:"categories"`
	RadiusKm   float64  `json:"radiusKm"`
}

// HistoryKey returns the dedupe key for history entries. The categories join
// is order-sensitive: the same set in a different order is a different key.
func (q SearchQuery) HistoryKey() string {
	return strings.ToLower(strings.TrimSpace(q.City)) + "|" + strings.Join(q.Categories, ",")
}

// RawLead is one untrusted record from the model response. No shape is
// guaranteed: any field may be absent, null, wrong-typed or placeholder text.
type RawLead map[string]any

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Lead is a normalized business record. Every Lead that leaves the
// normalizer is structurally valid; nullable fields use pointers.
type Lead struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Phone            *string  `json:"phone"`
	Website          *string  `json:"website"`
	Email            *string  `json:"email"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Distance         *float64 `json:"distance"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"userRatingsTotal"`
	EstablishedDate  *string  `json:"establishedDate"`
	MapsURL          string   `json:"mapsUrl"`
	LastUpdated      string   `json:"lastUpdated"`
	Source           string   `json:"source"`
}

// HistoryEntry records one successful search.
type HistoryEntry struct {
	ID          string      `json:"id"`
	Query       SearchQuery `json:"query"`
	Timestamp   string      `json:"timestamp"`
	ResultCount int         `json:"resultCount"`
}
