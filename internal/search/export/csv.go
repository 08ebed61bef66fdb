// Package export renders lead batches for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/phone"
)

// CSVFilename is the suggested download name for CSV exports.
const CSVFilename = "leads.csv"

func csvHeaders() []string {
	return []string{
		"Name",
		"Address",
		"Phone",
		"Website",
		"Email",
		"Rating",
		"Reviews",
		"Established",
		"Distance (km)",
		"Maps URL",
		"Last Updated",
	}
}

// WriteCSV streams the lead batch as CSV. Phone numbers are rendered in
// E.164 when they parse; everything nullable renders as an empty cell.
func WriteCSV(w io.Writer, leads []domain.Lead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders()); err != nil {
		return err
	}

	for _, lead := range leads {
		if err := writer.Write(csvRow(lead)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvRow(lead domain.Lead) []string {
	return []string{
		lead.Name,
		lead.Address,
		optPhone(lead.Phone),
		optString(lead.Website),
		optString(lead.Email),
		optFloat(lead.Rating, 1),
		optInt(lead.UserRatingsTotal),
		optString(lead.EstablishedDate),
		optFloat(lead.Distance, 2),
		lead.MapsURL,
		lead.LastUpdated,
	}
}

func optPhone(value *string) string {
	if value == nil {
		return ""
	}
	return phone.DisplayE164(*value)
}

func optString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optFloat(value *float64, precision int) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', precision, 64)
}

func optInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
