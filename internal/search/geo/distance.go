// Package geo computes great-circle distances for normalized leads.
package geo

import (
	"math"

	"leadscout_backend/internal/search/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Annotate fills in the Distance field of every lead with usable
// coordinates, measured from origin in kilometers. A nil origin is the
// identity: all distances stay nil.
//
// A lead with a zero lat or lng is treated as having no coordinates and
// keeps a nil distance, so a lead genuinely on the equator or prime meridian
// is skipped too. NaN coordinates, by contrast, come out as distance 0.
// Both behaviors are pinned by tests.
func Annotate(leads []domain.Lead, origin *domain.LatLng) []domain.Lead {
	if origin == nil {
		return leads
	}

	for i := range leads {
		if leads[i].Lat == 0 || leads[i].Lng == 0 {
			continue
		}
		d := Haversine(origin.Lat, origin.Lng, leads[i].Lat, leads[i].Lng)
		if math.IsNaN(d) {
			d = 0
		}
		leads[i].Distance = &d
	}

	return leads
}

// Haversine returns the great-circle distance in kilometers between two
// WGS84 coordinate pairs.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
