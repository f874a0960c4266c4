package utils

import "strings"

// CanonicalEmail normalizes an account identifier. Every entity keys off the
// full email in this form; no role ever derives a different key.
func CanonicalEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ChatThreadID derives the conversation key for two participants. The result
// is identical regardless of argument order: the canonical emails are sorted
// lexicographically and joined with an underscore.
func ChatThreadID(a, b string) (string, error) {
	a = CanonicalEmail(a)
	b = CanonicalEmail(b)
	if a == "" || b == "" {
		return "", &IdentityError{Reason: "missing participant identifier"}
	}
	if b < a {
		a, b = b, a
	}
	return a + "_" + b, nil
}
