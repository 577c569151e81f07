package outline

import "testing"

func TestExcluded(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Copyright 2023 Acme Corp", true},
		{"© 2023 Acme Corp", true},
		{"All rights reserved worldwide", true},
		{"CONFIDENTIAL draft", true},
		{"https://example.com/docs", true},
		{"www.example.com", true},
		{"@team.example.com mailing list", true},
		{"12/31/2023", true},
		{"3-4-99", true},
		{"ab", true},   // too short
		{"", true},     // empty after trim
		{"   ", true},  // whitespace only
		{"Introduction", false},
		{"1.2 System Overview", false},
		{"Review the copyright notice", false}, // keyword not at start
		{"Report for 2023", false},
	}
	for _, tt := range tests {
		if got := Excluded(tt.text, 1); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExcludedLongText(t *testing.T) {
	long := make([]rune, 151)
	for i := range long {
		long[i] = 'a'
	}
	if !Excluded(string(long), 1) {
		t.Error("151-rune text should be excluded")
	}
	if Excluded(string(long[:150]), 1) {
		t.Error("150-rune text should pass the length gate")
	}
}
