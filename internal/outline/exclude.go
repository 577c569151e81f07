package outline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Patterns that veto a span outright. Matching is anchored at the start
// of the lowercased text, except the bare date which must occupy the
// whole string.
var exclusionPatterns = []*regexp.Regexp{
	// Copyright and legal boilerplate.
	regexp.MustCompile(`^(copyright|©|all rights reserved|confidential|proprietary)`),
	// URLs, emails and bare domains.
	regexp.MustCompile(`^(http[s]?://|www\.|@[\w.-]+\.\w+|\.com|\.org|\.net)`),
	// Bare dates like 12/03/2023 or 1-1-99.
	regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`),
}

// Excluded reports whether a span's text can never be a heading. It is a
// hard veto with no confidence component, applied during both heading
// scoring and title selection.
func Excluded(text string, page int) bool {
	clean := strings.TrimSpace(text)
	n := utf8.RuneCountInString(clean)
	if n < 3 || n > 150 {
		return true
	}
	lower := strings.ToLower(clean)
	for _, p := range exclusionPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
