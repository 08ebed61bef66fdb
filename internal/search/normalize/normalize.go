// Package normalize turns untrusted model records into canonical leads.
//
// Normalize is total: it never rejects a record, it substitutes defaults for
// anything missing or malformed.
package normalize

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/phone"
	"leadscout_backend/platform/sanitize"
)

const (
	// PlaceholderName is used when the record carries no usable name.
	PlaceholderName = "Unknown Business"
	// PlaceholderAddress is used when the record carries no usable address.
	PlaceholderAddress = "Address unavailable"
	// Source marks where normalized leads came from.
	Source = "ai-web-search"

	mapsSearchBase = "https://www.google.com/maps/search/?api=1&query="
	dateLayout     = "2006-01-02"
)

// Normalize coerces one raw record into a canonical Lead. The id is derived
// from the batch timestamp and the record's position, so it is unique within
// one retrieval but not across retrievals.
func Normalize(raw domain.RawLead, index int, batch time.Time) domain.Lead {
	name := stringField(raw, "name", PlaceholderName)
	address := stringField(raw, "address", PlaceholderAddress)

	lead := domain.Lead{
		ID:               fmt.Sprintf("%d-%d", batch.UnixMilli(), index),
		Name:             name,
		Address:          address,
		Phone:            phoneField(raw, "phone"),
		Website:          optionalString(raw, "website"),
		Email:            optionalString(raw, "email"),
		Lat:              numberField(raw, "lat"),
		Lng:              numberField(raw, "lng"),
		Rating:           ratingField(raw, "rating"),
		UserRatingsTotal: countField(raw, "userRatingsTotal"),
		EstablishedDate:  optionalString(raw, "establishedDate"),
		MapsURL:          mapsSearchBase + url.QueryEscape(name+" "+address),
		LastUpdated:      batch.Format(dateLayout),
		Source:           Source,
	}

	return lead
}

// Batch normalizes a whole retrieval, dropping exact (name, address)
// duplicates. Records that normalized to both placeholders are kept as-is
// since there is nothing meaningful to compare them by.
func Batch(raws []domain.RawLead, batch time.Time) []domain.Lead {
	leads := make([]domain.Lead, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))

	for i, raw := range raws {
		lead := Normalize(raw, i, batch)

		if lead.Name != PlaceholderName || lead.Address != PlaceholderAddress {
			key := strings.ToLower(lead.Name) + "|" + strings.ToLower(lead.Address)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		leads = append(leads, lead)
	}

	return leads
}

// stringField trims and strips any markup the model smuggled in; the
// dashboard renders these fields as text.
func stringField(raw domain.RawLead, key, fallback string) string {
	s, ok := raw[key].(string)
	if !ok {
		return fallback
	}
	cleaned := sanitize.Text(s)
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

func optionalString(raw domain.RawLead, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	cleaned := sanitize.Text(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// phoneField keeps the trimmed original formatting when the candidate passes
// the plausibility filter, otherwise nil.
func phoneField(raw domain.RawLead, key string) *string {
	candidate := ""
	switch v := raw[key].(type) {
	case string:
		candidate = strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) && !math.IsNaN(v) && !math.IsInf(v, 0) {
			candidate = strconv.FormatFloat(v, 'f', -1, 64)
		}
	default:
		return nil
	}

	if !phone.Plausible(candidate) {
		return nil
	}
	return &candidate
}

// numberField coerces to float64, treating anything non-numeric (or NaN) as 0.
func numberField(raw domain.RawLead, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// ratingField keeps the value only when it is numerically typed. No range
// clamping: out-of-range ratings pass through unchanged.
func ratingField(raw domain.RawLead, key string) *float64 {
	switch v := raw[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// countField keeps the value only when it is integer-typed.
func countField(raw domain.RawLead, key string) *int {
	switch v := raw[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil
		}
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	default:
		return nil
	}
}
