package validation

import (
	"strings"
	"unicode/utf8"
)

// PasswordSymbols is the set of characters accepted as "special".
const PasswordSymbols = "!@#$%^&*"

const passwordMinLength = 8

// PasswordRules returns one message per strength rule that p violates.
func PasswordRules(p string) []string {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}

	var out []string
	if utf8.RuneCountInString(p) < passwordMinLength {
		out = append(out, "Password must be at least 8 characters")
	}
	if !hasUpper {
		out = append(out, "Password must include at least one uppercase letter")
	}
	if !hasLower {
		out = append(out, "Password must include at least one lowercase letter")
	}
	if !hasDigit {
		out = append(out, "Password must include at least one number")
	}
	if !hasSymbol {
		out = append(out, "Password must include at least one special character")
	}
	return out
}
