package outline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PatternMatch is the result of structural pattern detection: the level
// the shape suggests and its base confidence contribution.
type PatternMatch struct {
	Level      int
	Confidence int
}

var (
	numberedRe   = regexp.MustCompile(`^(\d+)((?:\.\d+)*)\.?\s+(.+)$`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
	letteredRe   = regexp.MustCompile(`^([A-Z])((?:\.\d+)*)\.?\s+(.+)$`)
	romanRe      = regexp.MustCompile(`^[IVX]+\.?\s+(.+)$`)
	timeRatioRe  = regexp.MustCompile(`\d+:\d+`)
	// Shapes like "VERSION 10". Known to also reject legitimate
	// all-caps headings that contain a digit; kept as-is.
	versionShapeRe = regexp.MustCompile(`^[A-Z\s]+\d+[A-Z\s]*$`)
)

// DetectPattern runs the ordered heading-shape rules against text.
// The first matching rule wins; there is no accumulation across rules.
// ok is false when no rule matches.
func DetectPattern(text string) (m PatternMatch, ok bool) {
	t := strings.TrimSpace(text)

	// Rule 1: numbered sections ("3. Scope", "1.2 Overview", "2.1.4 Detail").
	if g := numberedRe.FindStringSubmatch(t); g != nil {
		content := strings.TrimSpace(g[3])
		if utf8.RuneCountInString(content) > 5 && !digitsOnlyRe.MatchString(content) {
			level := 1
			if g[2] != "" {
				level = min(strings.Count(g[2], ".")+1, 3)
			}
			return PatternMatch{Level: level, Confidence: 90}, true
		}
	}

	// Rule 2: lettered sections ("A. Methodology").
	if g := letteredRe.FindStringSubmatch(t); g != nil {
		content := strings.TrimSpace(g[3])
		if utf8.RuneCountInString(content) > 5 {
			return PatternMatch{Level: 1, Confidence: 80}, true
		}
	}

	// Rule 3: roman numerals ("IV. Results").
	if g := romanRe.FindStringSubmatch(t); g != nil {
		content := strings.TrimSpace(g[1])
		if utf8.RuneCountInString(content) > 5 {
			return PatternMatch{Level: 1, Confidence: 70}, true
		}
	}

	// Rule 4: colon-terminated sub-headings, excluding times and ratios.
	if strings.HasSuffix(t, ":") && utf8.RuneCountInString(t) > 8 &&
		!timeRatioRe.MatchString(t) && strings.Count(t, ":") == 1 {
		return PatternMatch{Level: 2, Confidence: 60}, true
	}

	// Rule 5: selective all-caps, excluding version-like strings.
	if n := utf8.RuneCountInString(t); isUpper(t) && n >= 10 && n <= 60 &&
		!versionShapeRe.MatchString(t) {
		return PatternMatch{Level: 1, Confidence: 50}, true
	}

	return PatternMatch{}, false
}

// isUpper reports whether the string contains at least one cased rune
// and no lowercase runes.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
