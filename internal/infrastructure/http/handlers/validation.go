package handlers

import "strings"

// Validation limits.
const (
	MaxEmailLength = 254
	MaxNameLength  = 255
	MaxTitleLength = 500
)

// SanitizeEmail trims and lowercases email; returns empty if invalid length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizeName trims a display or project name; returns empty if over max length.
func SanitizeName(name string) string {
	s := strings.TrimSpace(name)
	if len(s) > MaxNameLength {
		return ""
	}
	return s
}
