package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/outliner/internal/span"
)

// MarkdownParser reads the heading structure goldmark exposes. Markdown
// carries its outline natively, so the classifier is bypassed.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*span.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &span.Document{
		Title:     stem(filename),
		PageCount: 1,
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(headingText(h, src)))
		if title == "" {
			continue
		}
		// The first top-level heading doubles as the document title.
		if h.Level == 1 && doc.Title == stem(filename) {
			doc.Title = title
		}
		doc.Native = append(doc.Native, span.NativeHeading{
			Text:  title,
			Level: h.Level,
			Page:  1,
		})
	}
	return doc, nil
}

// headingText collects the plain text of a heading's inline children.
func headingText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			continue
		}
		buf.Write(headingText(c, src))
	}
	return buf.Bytes()
}
