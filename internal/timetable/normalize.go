package timetable

import (
	"regexp"
	"strings"
)

// nonSearchable matches every run of characters that is not a digit, a
// lowercase latin letter or a Hangul syllable. Everything else collapses
// to a single space for search purposes.
var nonSearchable = regexp.MustCompile(`[^0-9a-z가-힣]+`)

// NormalizeSpace collapses all whitespace runs to single spaces and trims.
func NormalizeSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeForSearch lowercases, strips everything outside the searchable
// alphabet and collapses whitespace. Both search fields and queries go
// through this so matching is symmetric.
func NormalizeForSearch(value string) string {
	lowered := strings.ToLower(value)
	spaced := nonSearchable.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(spaced)
}
