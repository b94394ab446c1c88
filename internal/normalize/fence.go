package normalize

import (
	"regexp"
	"strings"
)

var fenceMarker = regexp.MustCompile("```(?:json)?\n?")

// StripFences removes every ``` / ```json marker, keeps the enclosed text in
// order and trims the result. Markers are removed until none remain, so the
// function is idempotent even when removal joins stray backticks.
func StripFences(s string) string {
	for strings.Contains(s, "```") {
		s = fenceMarker.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}
