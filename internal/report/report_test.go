package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/span"
)

func TestFromResultStripsInternalFields(t *testing.T) {
	r := &outline.Result{
		Title: "Sample Document",
		Entries: []outline.Entry{
			{Text: "1. Introduction", Page: 1, Level: outline.H1, Confidence: 145, FontSize: 14},
		},
		Metadata: outline.Metadata{PageCount: 3},
	}
	d := FromResult(r)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	if strings.Contains(s, "confidence") || strings.Contains(s, "font_size") {
		t.Errorf("internal fields leaked: %s", s)
	}
	if !strings.Contains(s, `"level":"H1"`) {
		t.Errorf("level missing or malformed: %s", s)
	}
}

func TestFromNativeClampsLevels(t *testing.T) {
	d := FromNative("Readme", []span.NativeHeading{
		{Text: "Top", Level: 0, Page: 1},
		{Text: "Deep", Level: 6, Page: 1},
	}, 1)
	if d.Outline[0].Level != "H1" {
		t.Errorf("level 0 clamped to %s, want H1", d.Outline[0].Level)
	}
	if d.Outline[1].Level != "H3" {
		t.Errorf("level 6 clamped to %s, want H3", d.Outline[1].Level)
	}
}

func TestValidate(t *testing.T) {
	good := &Document{
		Title: "Sample",
		Outline: []Entry{
			{Level: "H2", Text: "Background", Page: 2},
		},
		Metadata: Metadata{PageCount: 2},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}

	empty := &Document{Title: "Empty Document", Outline: []Entry{}, Metadata: Metadata{PageCount: 0}}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty outline rejected: %v", err)
	}

	bad := &Document{
		Title:    "Sample",
		Outline:  []Entry{{Level: "H9", Text: "Background", Page: 2}},
		Metadata: Metadata{PageCount: 2},
	}
	if err := bad.Validate(); err == nil {
		t.Error("H9 level passed validation")
	}

	badPage := &Document{
		Title:    "Sample",
		Outline:  []Entry{{Level: "H1", Text: "Background", Page: 0}},
		Metadata: Metadata{PageCount: 2},
	}
	if err := badPage.Validate(); err == nil {
		t.Error("page 0 passed validation")
	}
}

func TestMarshalIndented(t *testing.T) {
	d := &Document{
		Title:    "Sample",
		Outline:  []Entry{{Level: "H1", Text: "A & B", Page: 1}},
		Metadata: Metadata{PageCount: 1},
	}
	raw, err := d.MarshalIndented()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n  \"title\"") {
		t.Errorf("not two-space indented: %s", raw)
	}
	if !strings.Contains(string(raw), "A & B") {
		t.Errorf("ampersand was HTML-escaped: %s", raw)
	}
}
