// Package strcase converts identifier casing for API field names.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a Go-style identifier to snake_case. Acronyms stay
// together: "OTPSecret" becomes "otp_secret", not "o_t_p_secret".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}

			// Boundaries: lower/digit followed by upper, and the last
			// letter of an acronym before a lowercased word.
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune('_')
			} else if unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next) {
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
