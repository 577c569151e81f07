package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/outliner/internal/span"
)

// DOCXParser reads Word heading styles as a native outline. Documents
// styled without headings fall back to synthetic spans so the classifier
// can still find structure in the paragraph text.
type DOCXParser struct{}

// Synthetic layout constants for unstyled documents. DOCX has no page
// geometry before rendering, so paragraphs are laid out on one long
// page at a fixed size.
const (
	docxFontSize   = 12.0
	docxMarginX    = 72.0
	docxLineHeight = 14.0
)

func (p *DOCXParser) Parse(r io.Reader, filename string) (*span.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "outliner-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	wordDoc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &span.Document{
		Title:     stem(filename),
		PageCount: 1,
	}

	idx := 0
	for _, item := range wordDoc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}

		if level := paragraphHeadingLevel(para); level > 0 {
			if level == 1 && doc.Title == stem(filename) {
				doc.Title = text
			}
			doc.Native = append(doc.Native, span.NativeHeading{
				Text:  text,
				Level: level,
				Page:  1,
			})
		}

		if utf8.RuneCountInString(text) >= 2 {
			doc.Spans = append(doc.Spans, span.Span{
				Text:       text,
				FontSize:   docxFontSize,
				FontName:   "default",
				X:          docxMarginX,
				Y:          float64(idx) * docxLineHeight,
				Page:       1,
				LineHeight: docxLineHeight,
			})
		}
		idx++
	}
	return doc, nil
}

// paragraphHeadingLevel maps Word heading styles ("Heading1", "heading 2")
// to an outline level.
func paragraphHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	rest := strings.TrimPrefix(style, "heading")
	if len(rest) != 1 || rest[0] < '1' || rest[0] > '6' {
		return 0
	}
	return int(rest[0] - '0')
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
