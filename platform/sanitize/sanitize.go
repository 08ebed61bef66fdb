// Package sanitize strips markup from untrusted text before it is stored or
// rendered. The main source here is model output: generated business names,
// addresses and websites occasionally arrive wrapped in HTML fragments or
// with entity-encoded tags.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// entityDecoder covers the entities models actually emit; full HTML
	// entity handling is not needed for plain-text business fields.
	entityDecoder = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// StripHTML removes HTML tags, decodes common entities and strips again so an
// entity-encoded tag cannot survive a single round of decoding downstream.
func StripHTML(s string) string {
	result := tagPattern.ReplaceAllString(s, "")
	result = entityDecoder.Replace(result)
	result = tagPattern.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a free-text field for storage or display.
func Text(s string) string {
	return StripHTML(s)
}
