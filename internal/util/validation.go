package util

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims whitespace and lowercases an email address so that
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether s is a bare RFC 5322 address (no display name).
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// SplitEmailList parses a comma-separated recipient list, dropping entries
// that do not look like addresses.
func SplitEmailList(raw string) []string {
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && strings.Contains(p, "@") {
			emails = append(emails, p)
		}
	}
	return emails
}
