package service

import (
	"strings"
	"unicode/utf8"

	"mcq-generator/internal/domain"
)

// TruncateText keeps the first domain.MaxExtractedChars characters of text
func TruncateText(text string) string {
	return truncateChars(text, domain.MaxExtractedChars)
}

func truncateChars(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

// hasText reports whether text carries anything besides whitespace
func hasText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// preview shortens text for debug logging
func preview(text string) string {
	const previewChars = 500
	return truncateChars(text, previewChars)
}
