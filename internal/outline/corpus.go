package outline

import (
	"strings"

	"github.com/dgallion1/outliner/internal/span"
)

// Corpus holds read-only document-wide text statistics that per-span
// scoring decisions need. It is built once per document alongside the
// font profile and never mutated afterwards.
type Corpus struct {
	occurrences map[string]int
}

// BuildCorpus tallies how often each normalized (lowercased, trimmed)
// text occurs across the whole span list.
func BuildCorpus(spans []span.Span) *Corpus {
	occ := make(map[string]int, len(spans))
	for _, s := range spans {
		occ[normalizeText(s.Text)]++
	}
	return &Corpus{occurrences: occ}
}

// Occurrences returns the number of spans sharing the given text after
// normalization. Repeated running headers show up here with high counts.
func (c *Corpus) Occurrences(text string) int {
	return c.occurrences[normalizeText(text)]
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
