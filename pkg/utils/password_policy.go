package utils

import "strings"

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// passwordRules are checked in order; the first failing rule is reported.
var passwordRules = []struct {
	message string
	ok      func(string) bool
}{
	{"Password must be at least 8 characters long", func(p string) bool { return len([]rune(p)) >= 8 }},
	{"Password must include at least one lowercase letter", func(p string) bool { return strings.IndexFunc(p, isASCIILower) >= 0 }},
	{"Password must include at least one uppercase letter", func(p string) bool { return strings.IndexFunc(p, isASCIIUpper) >= 0 }},
	{"Password must include at least one number", func(p string) bool { return strings.IndexFunc(p, isASCIIDigit) >= 0 }},
	{"Password must include at least one special character", func(p string) bool { return strings.ContainsAny(p, passwordSpecialChars) }},
}

// ValidatePasswordStrength returns a *PasswordPolicyError naming the first unmet rule.
func ValidatePasswordStrength(password string) error {
	for _, rule := range passwordRules {
		if !rule.ok(password) {
			return &PasswordPolicyError{Rule: rule.message}
		}
	}
	return nil
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
