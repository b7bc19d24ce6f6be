package utils

import "strings"

const quoteCharacters = "\"'"

// IsBlank reports whether a string is empty or whitespace-only.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// TrimSpacesAndQuotes removes surrounding whitespace and quote characters, as left behind by .env files.
func TrimSpacesAndQuotes(value string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(value), quoteCharacters))
}
