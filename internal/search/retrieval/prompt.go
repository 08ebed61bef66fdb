package retrieval

import (
	"fmt"
	"strings"

	"leadscout_backend/internal/search/domain"
)

// BuildPrimaryPrompt produces the search-grounded instruction. The JSON
// schema is embedded in the prompt because the Gemini API does not accept a
// response schema together with the search tool.
func BuildPrimaryPrompt(query domain.SearchQuery, target int) string {
	categories := strings.Join(query.Categories, ", ")

	return fmt.Sprintf(`You are a local business research assistant. Use Google Search to find up to %d real businesses in or around %s (within roughly %.0f km) matching these categories: %s.

For every business you MUST look up a real, currently published contact phone number using web search. Never invent a number. Never output placeholder numbers such as repeated digits (9999999999), ascending sequences (1234567890) or all zeros. If no real number can be found, omit the phone field entirely.

Respond with ONLY a JSON array (no markdown, no code fences, no commentary). Each element is an object with this shape:
{
  "name": string (required),
  "address": string (required, full street address),
  "lat": number (required, decimal latitude),
  "lng": number (required, decimal longitude),
  "phone": string (optional, real number with local formatting),
  "website": string (optional),
  "email": string (optional),
  "rating": number (optional, 0-5),
  "userRatingsTotal": integer (optional),
  "establishedDate": string (optional, e.g. "2012")
}

Do not repeat the same business twice. Prefer businesses with verifiable contact details.`,
		target, query.City, query.RadiusKm, categories)
}

// BuildFallbackPrompt produces the degraded instruction: no search grounding,
// a smaller target and a looser shape, decoded under a response schema
// instead of prompt discipline.
func BuildFallbackPrompt(query domain.SearchQuery, target int) string {
	categories := strings.Join(query.Categories, ", ")

	return fmt.Sprintf(`List up to %d well-known businesses in %s matching: %s. Return a JSON array of objects with name, address, lat, lng and, when you are confident they are real, phone, website, email, rating, userRatingsTotal and establishedDate. Do not invent phone numbers.`,
		target, query.City, categories)
}
