package utils

import "strings"

// NormalizeOptional trims an optional text field and collapses blank values to
// nil, so they land as NULL in the database instead of empty strings.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
