package utils

import "strings"

// NormalizeEmail lower-cases and trims an email address. Empty output means
// "no usable address".
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitEmailList splits a comma-separated allowlist into normalized,
// non-empty email addresses.
func SplitEmailList(list string) []string {
	parts := strings.Split(list, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if email := NormalizeEmail(p); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

// NormalizeTitle lower-cases a roster title and collapses runs of whitespace
// so "Financial  Secretary " and "financial secretary" compare equal.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
