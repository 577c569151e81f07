// Package outline classifies a document's text spans into a structured
// outline: a title plus ordered heading candidates with levels and
// confidence scores. The whole package is a pure, single-threaded
// computation over one document; concurrent calls on independent
// documents share no state.
package outline

import (
	"sort"
	"strings"

	"github.com/dgallion1/outliner/internal/span"
)

// Entry is one accepted heading candidate. Confidence and FontSize are
// internal fields; the report layer strips them before anything leaves
// the process.
type Entry struct {
	Text       string  `json:"text"`
	Page       int     `json:"page"`
	Level      Level   `json:"level"`
	Confidence int     `json:"confidence"`
	FontSize   float64 `json:"font_size"`
}

// Metadata carries document-level facts alongside the outline.
type Metadata struct {
	PageCount int `json:"page_count"`
}

// Result is the assembled outline for one document.
type Result struct {
	Title    string   `json:"title"`
	Entries  []Entry  `json:"outline"`
	Metadata Metadata `json:"metadata"`
}

// Errored reports whether the result is the internal-failure sentinel.
// Callers are expected to check this rather than receive an error.
func (r *Result) Errored() bool {
	return r.Title == TitleError && len(r.Entries) == 0
}

type spanKey struct {
	text string
	page int
}

// Analyze classifies a document's spans into an ordered outline. It is
// deterministic: identical span lists produce identical results on every
// call. Any panic inside the analysis is recovered and converted into
// the Error sentinel so one malformed document cannot take down a batch.
func Analyze(spans []span.Span, pageCount int) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = &Result{Title: TitleError, Entries: nil}
		}
	}()

	if len(spans) == 0 {
		return &Result{
			Title:    TitleEmpty,
			Entries:  nil,
			Metadata: Metadata{PageCount: pageCount},
		}
	}

	profile := BuildFontProfile(spans)
	corpus := BuildCorpus(spans)
	title := SelectTitle(spans)

	// Y position of the first occurrence of each key among all spans,
	// accepted or not. Used only for ordering the final entries.
	positions := make(map[spanKey]float64, len(spans))
	for _, s := range spans {
		k := spanKey{normalizeText(s.Text), s.Page}
		if _, ok := positions[k]; !ok {
			positions[k] = s.Y
		}
	}

	var entries []Entry
	accepted := make(map[spanKey]bool)
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		k := spanKey{strings.ToLower(text), s.Page}
		if accepted[k] {
			continue
		}
		v := Score(s, profile, corpus)
		if !v.Heading {
			continue
		}
		accepted[k] = true
		entries = append(entries, Entry{
			Text:       text,
			Page:       s.Page,
			Level:      v.Level,
			Confidence: v.Confidence,
			FontSize:   s.FontSize,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		yi := positions[spanKey{strings.ToLower(entries[i].Text), entries[i].Page}]
		yj := positions[spanKey{strings.ToLower(entries[j].Text), entries[j].Page}]
		return yi < yj
	})

	return &Result{
		Title:    title,
		Entries:  entries,
		Metadata: Metadata{PageCount: pageCount},
	}
}
