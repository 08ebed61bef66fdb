package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"leadscout_backend/internal/search/domain"
)

func strPtr(s string) *string { return &s }
func fPtr(v float64) *float64 { return &v }
func intPtr(v int) *int       { return &v }

func rows(t *testing.T, out string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestWriteCSVHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	leads := []domain.Lead{{
		ID:               "1-0",
		Name:             "Cafe Noor",
		Address:          "12 MG Road",
		Phone:            strPtr("098201 23456"),
		Website:          strPtr("https://noor.example"),
		Rating:           fPtr(4.3),
		UserRatingsTotal: intPtr(240),
		Distance:         fPtr(2.5),
		MapsURL:          "https://www.google.com/maps/search/?api=1&query=Cafe+Noor+12+MG+Road",
		LastUpdated:      "2025-03-14",
	}}

	if err := WriteCSV(&buf, leads); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records := rows(t, buf.String())
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "Name" || records[0][2] != "Phone" {
		t.Fatalf("unexpected header %v", records[0])
	}

	row := records[1]
	if row[0] != "Cafe Noor" {
		t.Fatalf("unexpected name %q", row[0])
	}
	if row[2] != "+919820123456" {
		t.Fatalf("expected E.164 phone in export, got %q", row[2])
	}
	if row[5] != "4.3" {
		t.Fatalf("unexpected rating cell %q", row[5])
	}
	if row[8] != "2.50" {
		t.Fatalf("unexpected distance cell %q", row[8])
	}
}

func TestWriteCSVNilFieldsAreEmptyCells(t *testing.T) {
	var buf bytes.Buffer
	leads := []domain.Lead{{Name: "Bare", Address: "Nowhere"}}

	if err := WriteCSV(&buf, leads); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	row := rows(t, buf.String())[1]
	for _, idx := range []int{2, 3, 4, 5, 6, 7, 8} {
		if row[idx] != "" {
			t.Fatalf("expected empty cell at %d, got %q", idx, row[idx])
		}
	}
}

func TestWriteCSVEscapesCommas(t *testing.T) {
	var buf bytes.Buffer
	leads := []domain.Lead{{Name: `Say "Cheese", Pune`, Address: "1, MG Road"}}

	if err := WriteCSV(&buf, leads); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	row := rows(t, buf.String())[1]
	if row[0] != `Say "Cheese", Pune` {
		t.Fatalf("round-trip lost quoting: %q", row[0])
	}
}
