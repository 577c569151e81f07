package parser

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/outliner/internal/span"
)

// PDFParser extracts positioned text spans with font metadata. The
// outline engine needs per-line font sizes and coordinates, so plain
// text extraction is not enough here.
type PDFParser struct{}

// defaultPageHeight is US Letter in points, used when a page carries no
// usable MediaBox.
const defaultPageHeight = 792.0

// lineTolerance is the vertical distance within which two fragments are
// considered part of the same line.
const lineTolerance = 2.0

func (p *PDFParser) Parse(r io.Reader, filename string) (*span.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "outliner-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &span.Document{PageCount: reader.NumPage()}
	for i := 1; i <= doc.PageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		height := pageHeight(page)
		texts := page.Content().Text
		doc.Spans = append(doc.Spans, assembleLines(texts, height, i)...)
	}
	return doc, nil
}

// pageHeight reads the MediaBox height, falling back to US Letter.
func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}

// assembleLines groups raw content fragments into line-level spans. The
// library reports bottom-origin coordinates and frequently splits lines
// into word- or character-sized fragments.
func assembleLines(texts []pdflib.Text, height float64, page int) []span.Span {
	if len(texts) == 0 {
		return nil
	}

	// Top of the page first, left to right within a line.
	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var spans []span.Span
	var line []pdflib.Text
	flush := func() {
		if s, ok := lineSpan(line, height, page); ok {
			spans = append(spans, s)
		}
		line = line[:0]
	}

	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if len(line) > 0 && line[0].Y-t.Y > lineTolerance {
			flush()
		}
		line = append(line, t)
	}
	flush()
	return spans
}

// lineSpan collapses one line's fragments into a span carrying the
// line's dominant font.
func lineSpan(line []pdflib.Text, height float64, page int) (span.Span, bool) {
	if len(line) == 0 {
		return span.Span{}, false
	}

	// Fragments arrive in Y-major order; within the line read left to
	// right regardless of sub-tolerance baseline jitter.
	sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

	var b strings.Builder
	prevEnd := 0.0
	minX := line[0].X
	for i, t := range line {
		if t.X < minX {
			minX = t.X
		}
		// Insert a space on a visible horizontal gap between fragments.
		if i > 0 && t.X-prevEnd > 1.0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}

	text := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(text) < 2 {
		return span.Span{}, false
	}

	font, size := dominantFont(line)
	lh := size * 1.2
	return span.Span{
		Text:       text,
		FontSize:   size,
		FontName:   font,
		Bold:       boldFont(font),
		X:          minX,
		Y:          height - line[0].Y, // flip to top-origin
		Page:       page,
		LineHeight: lh,
	}, true
}

// dominantFont picks the (font, size) pair covering the most characters
// on the line. Ties keep the first pair seen, reading left to right.
func dominantFont(line []pdflib.Text) (string, float64) {
	type key struct {
		font string
		size float64
	}
	weight := make(map[key]int)
	var order []key
	for _, t := range line {
		k := key{t.Font, t.FontSize}
		if _, seen := weight[k]; !seen {
			order = append(order, k)
		}
		weight[k] += utf8.RuneCountInString(t.S)
	}
	best := order[0]
	for _, k := range order[1:] {
		if weight[k] > weight[best] {
			best = k
		}
	}
	return best.font, best.size
}

// boldFont reports whether a font name marks a bold face.
func boldFont(name string) bool {
	n := strings.ToLower(name)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demibold"} {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}
