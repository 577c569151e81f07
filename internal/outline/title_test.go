package outline

import (
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/span"
)

func TestSelectTitleLargestFontWins(t *testing.T) {
	spans := []span.Span{
		{Text: "Engineering Design Review", FontSize: 24, Y: 100, Page: 1},
		{Text: "Prepared by the platform team", FontSize: 12, Y: 140, Page: 1},
		{Text: "body paragraph text", FontSize: 10, Y: 400, Page: 1},
	}
	if got := SelectTitle(spans); got != "Engineering Design Review" {
		t.Errorf("SelectTitle = %q", got)
	}
}

func TestSelectTitleSkipsGenericLabels(t *testing.T) {
	spans := []span.Span{
		{Text: "Overview", FontSize: 30, Y: 80, Page: 1},
		{Text: "Q3 Capacity Planning Report", FontSize: 18, Y: 120, Page: 1},
	}
	if got := SelectTitle(spans); got != "Q3 Capacity Planning Report" {
		t.Errorf("SelectTitle = %q, want the non-generic candidate", got)
	}
}

func TestSelectTitleFallbackScan(t *testing.T) {
	// Every span fails the primary filter (low on the page) but one
	// substantial span passes the fallback scan and returns verbatim.
	spans := []span.Span{
		{Text: "Copyright 2023 Acme", FontSize: 8, Y: 700, Page: 1},
		{Text: "Annual Engineering Report", FontSize: 12, Y: 650, Page: 1},
	}
	if got := SelectTitle(spans); got != "Annual Engineering Report" {
		t.Errorf("SelectTitle = %q, want fallback scan hit", got)
	}
}

func TestSelectTitlePlaceholders(t *testing.T) {
	if got := SelectTitle(nil); got != TitleUntitled {
		t.Errorf("no spans: got %q, want %q", got, TitleUntitled)
	}
	onlyPage2 := []span.Span{{Text: "Second Page Heading", FontSize: 14, Y: 50, Page: 2}}
	if got := SelectTitle(onlyPage2); got != TitleUntitled {
		t.Errorf("no page-1 spans: got %q, want %q", got, TitleUntitled)
	}
	junk := []span.Span{{Text: "12/31/2023", FontSize: 14, Y: 700, Page: 1}}
	if got := SelectTitle(junk); got != TitleFallback {
		t.Errorf("junk-only page: got %q, want %q", got, TitleFallback)
	}
}

func TestSelectTitleSingleWordLastResort(t *testing.T) {
	// All top candidates are single words; the best one is still returned.
	spans := []span.Span{
		{Text: "Prospectus", FontSize: 28, Y: 90, Page: 1},
		{Text: "Contents", FontSize: 14, Y: 200, Page: 1},
	}
	if got := SelectTitle(spans); got != "Prospectus" {
		t.Errorf("SelectTitle = %q, want best candidate as last resort", got)
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := normalizeTitle("A   Title\twith   gaps"); got != "A Title with gaps" {
		t.Errorf("whitespace collapse: %q", got)
	}
	long := strings.Repeat("ab ", 50) // 150 runes
	got := normalizeTitle(long)
	if len([]rune(got)) != maxTitleLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncation: len %d, suffix %q", len([]rune(got)), got[len(got)-3:])
	}
}
