package outline

import (
	"testing"

	"github.com/dgallion1/outliner/internal/span"
)

func mkSpan(text string, size float64, name string, page int) span.Span {
	return span.Span{Text: text, FontSize: size, FontName: name, Page: page}
}

func TestBuildFontProfileBodyStats(t *testing.T) {
	spans := []span.Span{
		mkSpan("body one", 10, "Helvetica", 1),
		mkSpan("body two", 10, "Helvetica", 1),
		mkSpan("body three", 10, "Helvetica", 1),
		mkSpan("HEADING", 18, "Helvetica-Bold", 1),
	}
	p := BuildFontProfile(spans)
	if p.BodyFontSize != 10 {
		t.Errorf("BodyFontSize = %v, want 10", p.BodyFontSize)
	}
	if p.BodyFontName != "Helvetica" {
		t.Errorf("BodyFontName = %q, want Helvetica", p.BodyFontName)
	}
	if p.MinSize != 10 || p.MaxSize != 18 {
		t.Errorf("size range = [%v, %v], want [10, 18]", p.MinSize, p.MaxSize)
	}
	if p.UniqueSizeCount != 2 {
		t.Errorf("UniqueSizeCount = %d, want 2", p.UniqueSizeCount)
	}
}

func TestBuildFontProfileTieKeepsFirstSeen(t *testing.T) {
	spans := []span.Span{
		mkSpan("a", 11, "Georgia", 1),
		mkSpan("b", 12, "Courier", 1),
		mkSpan("c", 11, "Georgia", 1),
		mkSpan("d", 12, "Courier", 1),
	}
	p := BuildFontProfile(spans)
	if p.BodyFontSize != 11 {
		t.Errorf("BodyFontSize = %v, want first-seen 11 on tie", p.BodyFontSize)
	}
	if p.BodyFontName != "Georgia" {
		t.Errorf("BodyFontName = %q, want first-seen Georgia on tie", p.BodyFontName)
	}
}

func TestBuildFontProfilePercentiles(t *testing.T) {
	var spans []span.Span
	for i := 1; i <= 10; i++ {
		spans = append(spans, mkSpan("x", float64(i), "F", 1))
	}
	p := BuildFontProfile(spans)
	if got := p.Percentiles[50]; got != 6 {
		t.Errorf("p50 = %v, want 6", got)
	}
	if got := p.Percentiles[95]; got != 10 {
		t.Errorf("p95 = %v, want 10", got)
	}
}

func TestBuildFontProfileEmpty(t *testing.T) {
	p := BuildFontProfile(nil)
	if p.BodyFontSize != 0 || p.BodyFontName != "" || p.UniqueSizeCount != 0 {
		t.Errorf("empty profile not zero-valued: %+v", p)
	}
}
