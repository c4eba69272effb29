// Package email holds the address normalizer every other component calls
// before touching external state, and the transactional sender client.
package email

import (
	"regexp"
	"strings"
)

// Permissive local@domain.tld shape; full RFC compliance is not attempted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize trims whitespace, lowercases and validates raw. The returned
// address is the only form that may be used as a key for new writes; reads
// may additionally fall back to the raw form for legacy rows.
func Normalize(raw string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" || !emailPattern.MatchString(trimmed) {
		return "", false
	}
	return trimmed, true
}
