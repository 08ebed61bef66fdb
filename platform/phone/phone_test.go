package phone

import "testing"

func TestPlausibleRejectsNullMarkers(t *testing.T) {
	markers := []string{"", "  ", "null", "NA", "n/a", "None", "undefined", "Not Available", "not found", "missing", "HIDDEN"}

	for _, marker := range markers {
		if Plausible(marker) {
			t.Fatalf("expected %q to be rejected as a null marker", marker)
		}
	}
}

func TestPlausibleRejectsShortNumbers(t *testing.T) {
	cases := []string{"123456", "12-34-56", "+91 12345"}

	for _, c := range cases {
		if Plausible(c) {
			t.Fatalf("expected %q to be rejected for having fewer than seven digits", c)
		}
	}
}

func TestPlausibleRejectsRepeatedAndPlaceholderDigits(t *testing.T) {
	cases := []string{
		"9999999999",
		"000-000-0000",
		"1234567890",
		"+91 1234567890",
		"0123456789",
		"9876543210",
		"9876999999",
		"0000000000",
	}

	for _, c := range cases {
		if Plausible(c) {
			t.Fatalf("expected %q to be rejected as placeholder", c)
		}
	}
}

func TestPlausibleAcceptsRealLookingNumbers(t *testing.T) {
	cases := []string{
		"+91 98201 23456",
		"(020) 2412-3456",
		"02024123456",
		"1234567", // seven digits, not a known placeholder
	}

	for _, c := range cases {
		if !Plausible(c) {
			t.Fatalf("expected %q to be accepted", c)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+91 (98201) 23-456"); got != "919820123456" {
		t.Fatalf("Digits returned %q", got)
	}
	if got := Digits("no digits"); got != "" {
		t.Fatalf("Digits returned %q for digit-free input", got)
	}
}

func TestDisplayE164(t *testing.T) {
	if got := DisplayE164("098201 23456"); got != "+919820123456" {
		t.Fatalf("expected E.164 formatting, got %q", got)
	}
	// Unparseable input comes back trimmed but otherwise untouched.
	if got := DisplayE164("  not-a-number  "); got != "not-a-number" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
