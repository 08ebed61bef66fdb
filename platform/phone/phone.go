// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

// minDigits is the canonical minimum digit count for a plausible number.
const minDigits = 7

// placeholderDigits are digit strings models tend to invent when they have no
// real number to report.
var placeholderDigits = map[string]struct{}{
	"1234567890": {},
	"0123456789": {},
	"9876543210": {},
	"9876999999": {},
	"0000000000": {},
}

// nullMarkers are raw values that mean "no phone number", spelled out.
var nullMarkers = map[string]struct{}{
	"":              {},
	"null":          {},
	"na":            {},
	"n/a":           {},
	"none":          {},
	"undefined":     {},
	"not available": {},
	"not found":     {},
	"missing":       {},
	"hidden":        {},
}

// Plausible reports whether a raw candidate string looks like a real phone
// number. It rejects explicit null markers, numbers with fewer than seven
// digits, single-repeated-digit strings, and known placeholder sequences.
func Plausible(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if _, isNull := nullMarkers[strings.ToLower(trimmed)]; isNull {
		return false
	}

	digits := Digits(trimmed)
	if len(digits) < minDigits {
		return false
	}
	if allSameDigit(digits) {
		return false
	}
	if _, isPlaceholder := placeholderDigits[digits]; isPlaceholder {
		return false
	}

	return true
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(digits string) bool {
	if digits == "" {
		return false
	}
	first := digits[0]
	for i := 1; i < len(digits); i++ {
		if digits[i] != first {
			return false
		}
	}
	return true
}

// DisplayE164 formats a phone number to E.164 for export surfaces.
// If parsing fails, it returns the trimmed input unchanged.
func DisplayE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
