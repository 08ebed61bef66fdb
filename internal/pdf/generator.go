package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/phone"
)

// PDFFilename is the suggested download name for PDF exports.
const PDFFilename = "leads.pdf"

var leadTableTmpl = template.Must(template.New("leads").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 9px; color: #111827; }
  h1 { font-size: 16px; margin-bottom: 2px; }
  .meta { color: #6b7280; font-size: 8px; margin-bottom: 10px; }
  table { width: 100%; border-collapse: collapse; }
  th { background: #f1f5f9; text-align: left; padding: 4px 6px; border-bottom: 1px solid #e2e8f0; }
  td { padding: 4px 6px; border-bottom: 1px solid #e2e8f0; vertical-align: top; }
  tr:nth-child(even) td { background: #f9fafb; }
  .num { text-align: right; white-space: nowrap; }
</style>
</head>
<body>
<h1>Business Leads</h1>
<div class="meta">{{.Count}} leads &middot; generated {{.GeneratedAt}}</div>
<table>
<thead>
<tr>
  <th>Name</th><th>Address</th><th>Phone</th><th>Website</th>
  <th class="num">Rating</th><th class="num">Reviews</th><th class="num">Distance (km)</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
  <td>{{.Name}}</td><td>{{.Address}}</td><td>{{.Phone}}</td><td>{{.Website}}</td>
  <td class="num">{{.Rating}}</td><td class="num">{{.Reviews}}</td><td class="num">{{.Distance}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>`))

type leadRow struct {
	Name     string
	Address  string
	Phone    string
	Website  string
	Rating   string
	Reviews  string
	Distance string
}

type leadTableData struct {
	Count       int
	GeneratedAt string
	Rows        []leadRow
}

// Generator renders lead batches into a printable PDF document.
type Generator struct {
	client *GotenbergClient
}

// NewGenerator creates a lead PDF generator backed by the given client.
func NewGenerator(client *GotenbergClient) *Generator {
	return &Generator{client: client}
}

// GeneratePDF renders the leads as a landscape table and converts it.
func (g *Generator) GeneratePDF(ctx context.Context, leads []domain.Lead) ([]byte, error) {
	data := leadTableData{
		Count:       len(leads),
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 MST"),
		Rows:        make([]leadRow, 0, len(leads)),
	}
	for _, lead := range leads {
		data.Rows = append(data.Rows, leadRow{
			Name:     lead.Name,
			Address:  lead.Address,
			Phone:    cellPhone(lead.Phone),
			Website:  cellString(lead.Website),
			Rating:   cellFloat(lead.Rating, 1),
			Reviews:  cellInt(lead.UserRatingsTotal),
			Distance: cellFloat(lead.Distance, 2),
		})
	}

	var html bytes.Buffer
	if err := leadTableTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render lead table: %w", err)
	}

	return g.client.ConvertHTML(ctx, html.Bytes(), LeadTableOpts())
}

func cellPhone(value *string) string {
	if value == nil {
		return ""
	}
	return phone.DisplayE164(*value)
}

func cellString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func cellFloat(value *float64, precision int) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', precision, 64)
}

func cellInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
