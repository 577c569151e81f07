// Package report shapes analysis results into the external outline
// document: internal scoring fields are stripped, and every document is
// validated against the embedded JSON schema before it leaves the
// process.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/span"
)

//go:embed schema/output_schema.json
var outputSchemaJSON string

var outputSchema = jsonschema.MustCompileString("output_schema.json", outputSchemaJSON)

// Entry is one outline row in the external document. Confidence and
// font size never appear here.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Metadata mirrors the analysis metadata.
type Metadata struct {
	PageCount int `json:"page_count"`
}

// Document is the outline document written to disk and returned by the
// API.
type Document struct {
	Title    string   `json:"title"`
	Outline  []Entry  `json:"outline"`
	Metadata Metadata `json:"metadata"`
}

// FromResult strips internal fields from an analysis result.
func FromResult(r *outline.Result) *Document {
	entries := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, Entry{
			Level: string(e.Level),
			Text:  e.Text,
			Page:  e.Page,
		})
	}
	return &Document{
		Title:    r.Title,
		Outline:  entries,
		Metadata: Metadata{PageCount: r.Metadata.PageCount},
	}
}

// FromNative builds a document straight from format-native headings,
// bypassing the classifier. Levels outside 1..3 are clamped.
func FromNative(title string, headings []span.NativeHeading, pageCount int) *Document {
	entries := make([]Entry, 0, len(headings))
	for _, h := range headings {
		lvl := h.Level
		if lvl < 1 {
			lvl = 1
		}
		if lvl > 3 {
			lvl = 3
		}
		entries = append(entries, Entry{
			Level: fmt.Sprintf("H%d", lvl),
			Text:  h.Text,
			Page:  h.Page,
		})
	}
	return &Document{
		Title:    title,
		Outline:  entries,
		Metadata: Metadata{PageCount: pageCount},
	}
}

// Validate checks the document against the embedded output schema.
func (d *Document) Validate() error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var inst any
	if err := json.Unmarshal(raw, &inst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := outputSchema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// MarshalIndented renders the document as the two-space-indented JSON
// the output files use.
func (d *Document) MarshalIndented() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
