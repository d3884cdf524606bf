package boundary

import "strings"

const (
	XSSPayload          = "<script>alert('xss')</script>"
	SQLInjectionPayload = "'; DROP TABLE tours; --"
	SpecialCharacters   = "Hello! @#$%^&*()_+-=[]{}|;':\",./<>?`~"
	UnicodeText         = "Hello 🌍 World! Café résumé naïve"
	PunctuationOnly     = "!!!"
)

// MalformedJSON is a request body that is not JSON at all.
var MalformedJSON = []byte("invalid json")

// HighCodepointText returns text made of characters outside the Basic Multilingual Plane
// (emoji and historic scripts), each encoded as four UTF-8 bytes.
func HighCodepointText() string {
	return "🗺️🚶‍♀️🏛️ 𓀀𓁐 𐍈𐌰 🦄🍕"
}

// Oversized returns a string of exactly n ASCII characters.
func Oversized(n int) string {
	return strings.Repeat("A", n)
}

// RepeatedSentence returns s repeated n times.
func RepeatedSentence(s string, n int) string {
	return strings.Repeat(s, n)
}

// ContainsUnescaped reports whether body contains payload verbatim. A payload whose
// markup characters were escaped or encoded does not count.
func ContainsUnescaped(body []byte, payload string) bool {
	if payload == "" {
		return false
	}
	return strings.Contains(string(body), payload)
}
