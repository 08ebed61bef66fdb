package geo

import (
	"math"
	"testing"

	"leadscout_backend/internal/search/domain"
)

func TestAnnotateNilOriginIsIdentity(t *testing.T) {
	leads := []domain.Lead{{Lat: 18.52, Lng: 73.85}}

	out := Annotate(leads, nil)
	if out[0].Distance != nil {
		t.Fatalf("expected nil distance without origin, got %v", *out[0].Distance)
	}
}

func TestAnnotateComputesDistance(t *testing.T) {
	origin := &domain.LatLng{Lat: 18.5204, Lng: 73.8567} // Pune
	leads := []domain.Lead{{Lat: 19.0760, Lng: 72.8777}} // Mumbai

	out := Annotate(leads, origin)
	if out[0].Distance == nil {
		t.Fatal("expected distance to be set")
	}
	// Great-circle Pune to Mumbai is roughly 120 km.
	if *out[0].Distance < 100 || *out[0].Distance > 140 {
		t.Fatalf("unexpected distance %v km", *out[0].Distance)
	}
}

func TestAnnotateSamePointIsZero(t *testing.T) {
	origin := &domain.LatLng{Lat: 18.52, Lng: 73.85}
	leads := []domain.Lead{{Lat: 18.52, Lng: 73.85}}

	out := Annotate(leads, origin)
	if out[0].Distance == nil {
		t.Fatal("expected distance to be set")
	}
	if *out[0].Distance > 0.001 {
		t.Fatalf("expected near-zero distance, got %v", *out[0].Distance)
	}
}

func TestAnnotateSkipsZeroCoordinates(t *testing.T) {
	origin := &domain.LatLng{Lat: 18.52, Lng: 73.85}
	leads := []domain.Lead{
		{Lat: 0, Lng: 73.85},
		{Lat: 18.52, Lng: 0},
		{Lat: 0, Lng: 0},
	}

	out := Annotate(leads, origin)
	for i, lead := range out {
		if lead.Distance != nil {
			t.Fatalf("lead %d: expected nil distance for zero coordinate, got %v", i, *lead.Distance)
		}
	}
}

func TestAnnotateNaNCoordinateBecomesZero(t *testing.T) {
	origin := &domain.LatLng{Lat: 18.52, Lng: 73.85}
	leads := []domain.Lead{{Lat: math.NaN(), Lng: 73.85}}

	out := Annotate(leads, origin)
	if out[0].Distance == nil {
		t.Fatal("expected distance to be set for NaN coordinate")
	}
	if *out[0].Distance != 0 {
		t.Fatalf("expected 0 for NaN coordinate, got %v", *out[0].Distance)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(18.52, 73.85, 19.07, 72.87)
	b := Haversine(19.07, 72.87, 18.52, 73.85)

	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %v and %v", a, b)
	}
}
