package span

// Span is a line-level run of text sharing one dominant font style,
// extracted from a page. Producers guarantee Text is trimmed, non-empty
// and at least 2 characters long, and Page >= 1. Coordinates are
// top-origin: Y grows downward, so smaller Y means higher on the page.
type Span struct {
	Text       string
	FontSize   float64
	FontName   string
	Bold       bool
	X          float64 // top-left of the dominant run
	Y          float64
	Page       int
	LineHeight float64
}

// NativeHeading is an outline entry read directly from format metadata
// (markdown/HTML heading levels, DOCX heading styles). Documents that
// carry native headings skip the classifier entirely.
type NativeHeading struct {
	Text  string
	Level int // 1-based; levels beyond 3 are clamped at report time
	Page  int
}

// Document is the parser output for one file.
type Document struct {
	Title     string
	Spans     []Span
	PageCount int
	Native    []NativeHeading
}
