package outline

import (
	"regexp"
	"strings"

	"github.com/dgallion1/outliner/internal/span"
)

// acceptThreshold is the total confidence a span must reach to be
// accepted as a heading.
const acceptThreshold = 80

// Level is a reported heading level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// levelFor maps an internal numeric level to the reported enum.
// Anything outside 1..3 collapses to H3.
func levelFor(n int) Level {
	switch n {
	case 1:
		return H1
	case 2:
		return H2
	default:
		return H3
	}
}

// Verdict is the scoring outcome for a single span.
type Verdict struct {
	Heading    bool
	Level      Level
	Confidence int
}

var (
	monthDateRe   = regexp.MustCompile(`\d{1,2}\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`)
	listItemRe    = regexp.MustCompile(`^\d+\.\s+\w+.*\s+(who|that|which|are|have|will|can|may|should)`)
	sectionLeadRe = regexp.MustCompile(`^(chapter|section|part|appendix)\s+`)
)

var penaltyWords = []string{"copyright", "©", "page", "version"}

var structureWords = []string{
	"table of contents", "acknowledgements", "references",
	"introduction", "conclusion", "overview",
}

// contentRule is one independent content signal: a pure function of the
// span text, the corpus statistics and whether a structural pattern
// matched, returning a signed confidence delta.
type contentRule struct {
	name string
	eval func(lower string, c *Corpus, patterned bool) int
}

// Evaluated in order; the deltas simply sum, so order only matters for
// readability here.
var contentRules = []contentRule{
	{"boilerplate-penalty", func(lower string, _ *Corpus, _ bool) int {
		for _, w := range penaltyWords {
			if strings.Contains(lower, w) {
				return -40
			}
		}
		return 0
	}},
	{"month-date-penalty", func(lower string, _ *Corpus, _ bool) int {
		if monthDateRe.MatchString(lower) {
			return -80
		}
		return 0
	}},
	{"long-sentence-penalty", func(lower string, _ *Corpus, patterned bool) int {
		if len(strings.Fields(lower)) > 12 && !patterned {
			return -30
		}
		return 0
	}},
	{"list-item-penalty", func(lower string, _ *Corpus, _ bool) int {
		if listItemRe.MatchString(lower) {
			return -50
		}
		return 0
	}},
	{"section-lead-boost", func(lower string, _ *Corpus, _ bool) int {
		if sectionLeadRe.MatchString(lower) {
			return 30
		}
		return 0
	}},
	// Structural keywords boost only when the text is not a repeated
	// running header (at most two occurrences document-wide).
	{"structure-word-boost", func(lower string, c *Corpus, _ bool) int {
		for _, w := range structureWords {
			if strings.Contains(lower, w) {
				if c.Occurrences(lower) <= 2 {
					return 20
				}
				return 0
			}
		}
		return 0
	}},
}

// Score combines the structural pattern, font statistics and content
// signals for one span into an accept/reject decision with a level.
// It is a pure function of the span, the profile and the corpus.
func Score(s span.Span, profile *FontProfile, corpus *Corpus) Verdict {
	if Excluded(s.Text, s.Page) {
		return Verdict{Heading: false, Level: H3, Confidence: 0}
	}

	total := 0
	suggested := 3 // most specific default

	pattern, patterned := DetectPattern(s.Text)
	if patterned {
		total += pattern.Confidence
		suggested = pattern.Level
	}

	// Font size relative to body text. Large ratios also cap the level.
	ratio := s.FontSize / profile.BodyFontSize
	switch {
	case ratio >= 2.0:
		total += 60
		suggested = min(suggested, 1)
	case ratio >= 1.8:
		total += 60
		suggested = min(suggested, 2)
	case ratio >= 1.5:
		total += 60
	case ratio >= 1.2:
		total += 30
	}

	if s.Bold {
		total += 25
		suggested = max(1, suggested-1)
	}

	if s.FontName != profile.BodyFontName {
		total += 15
	}

	// Left-aligned text starts near the margin.
	if s.X < 100 {
		total += 10
	}

	lower := strings.ToLower(s.Text)
	for _, r := range contentRules {
		total += r.eval(lower, corpus, patterned)
	}

	return Verdict{
		Heading:    total >= acceptThreshold,
		Level:      levelFor(suggested),
		Confidence: total,
	}
}
