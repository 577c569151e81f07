package parser

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/outliner/internal/span"
)

// TextParser lays plain-text lines out as synthetic spans on one long
// page so the classifier can pick out numbered and all-caps headings.
type TextParser struct{}

const (
	textFontSize   = 12.0
	textMarginX    = 72.0
	textLineHeight = 14.0
)

func (p *TextParser) Parse(r io.Reader, filename string) (*span.Document, error) {
	doc := &span.Document{
		Title:     stem(filename),
		PageCount: 1,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	idx := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		idx++
		if utf8.RuneCountInString(line) < 2 {
			continue
		}
		doc.Spans = append(doc.Spans, span.Span{
			Text:       line,
			FontSize:   textFontSize,
			FontName:   "default",
			X:          textMarginX,
			Y:          float64(idx) * textLineHeight,
			Page:       1,
			LineHeight: textLineHeight,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
