package outline

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/outliner/internal/span"
)

// Placeholder titles. TitleEmpty covers a document with no spans at all,
// TitleError is the sentinel produced when analysis fails internally.
const (
	TitleEmpty    = "Empty Document"
	TitleUntitled = "Untitled Document"
	TitleFallback = "Document"
	TitleError    = "Error"
)

// maxTitleLen is the rune cap applied before a title is returned.
const maxTitleLen = 100

// titleTopY bounds how far down page 1 a primary title candidate may sit.
const titleTopY = 300

var (
	numberedLeadRe = regexp.MustCompile(`^\d+\.`)
	versionLeadRe  = regexp.MustCompile(`^version\s+`)
	digitLeadRe    = regexp.MustCompile(`^\d`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
)

// Single words and generic labels that make poor titles.
var genericTitles = map[string]bool{
	"overview":         true,
	"introduction":     true,
	"document":         true,
	"foundation level": true,
}

// SelectTitle picks the document title from first-page spans: the
// largest, topmost candidate that looks like a real title, with escape
// hatches for documents whose first page is all boilerplate.
func SelectTitle(spans []span.Span) string {
	var firstPage []span.Span
	for _, s := range spans {
		if s.Page == 1 {
			firstPage = append(firstPage, s)
		}
	}
	if len(firstPage) == 0 {
		return TitleUntitled
	}

	var candidates []span.Span
	for _, s := range firstPage {
		text := strings.TrimSpace(s.Text)
		if utf8.RuneCountInString(text) > 5 &&
			!Excluded(text, 1) &&
			!numberedLeadRe.MatchString(text) &&
			!versionLeadRe.MatchString(strings.ToLower(text)) &&
			s.Y < titleTopY {
			candidates = append(candidates, s)
		}
	}

	if len(candidates) == 0 {
		// Fall back to the first substantial span on the page.
		for _, s := range firstPage {
			text := strings.TrimSpace(s.Text)
			if utf8.RuneCountInString(text) > 10 &&
				!strings.HasPrefix(strings.ToLower(text), "copyright") &&
				!digitLeadRe.MatchString(text) {
				return text
			}
		}
		return TitleFallback
	}

	// Largest font first, topmost position breaking ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].FontSize != candidates[j].FontSize {
			return candidates[i].FontSize > candidates[j].FontSize
		}
		return candidates[i].Y < candidates[j].Y
	})

	top := candidates
	if len(top) > 3 {
		top = top[:3]
	}
	for _, c := range top {
		title := strings.TrimSpace(c.Text)
		if len(strings.Fields(title)) >= 2 && !genericTitles[strings.ToLower(title)] {
			return normalizeTitle(title)
		}
	}

	return normalizeTitle(strings.TrimSpace(candidates[0].Text))
}

// normalizeTitle collapses internal whitespace and truncates long titles.
func normalizeTitle(title string) string {
	title = spaceRunRe.ReplaceAllString(title, " ")
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen]) + "..."
	}
	return title
}
