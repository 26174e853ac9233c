package scraper

import (
	"strings"
)

// Normalize collapses whitespace runs into single spaces and trims the result.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
