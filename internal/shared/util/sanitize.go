package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLen = 120

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes a client or generated name safe for object keys and
// Content-Disposition headers. Separators and spaces become '_', quotes and
// control characters are dropped, and traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") {
		return "", errInvalidFileName
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteByte('_')
		case r == '"' || r == '\'' || unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "", errInvalidFileName
	}
	if len(out) > maxFileNameLen {
		out = out[len(out)-maxFileNameLen:]
	}
	return out, nil
}
