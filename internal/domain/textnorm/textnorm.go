// Package textnorm normalizes raw resume text before matching.
//
// All functions are pure. Offsets produced downstream refer to the
// normalized text, so normalization must happen exactly once per
// request, before any matching.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe      = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
)

// Clean flattens line breaks and collapses whitespace runs.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// RedactPII masks email addresses and phone numbers.
func RedactPII(s string) string {
	s = emailRe.ReplaceAllString(s, "[EMAIL]")
	s = phoneRe.ReplaceAllString(s, "[PHONE]")
	return s
}

// Normalize is the canonical pre-matching transform: clean, then redact.
func Normalize(s string) string {
	return RedactPII(Clean(s))
}
