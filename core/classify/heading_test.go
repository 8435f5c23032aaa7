package classify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/config"
)

func TestIsHeading(t *testing.T) {
	c := NewHeadingClassifier(config.Default())

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"all caps", "INTRODUCTION", true},
		{"over max length", strings.Repeat("x", 101), false},
		{"long all caps still rejected", strings.Repeat("A", 101), false},
		{"ends with period", "This Is A Complete Sentence.", false},
		{"ends with comma", "First Item,", false},
		{"all caps with period rejected", "SUMMARY.", false},
		{"mostly capitalized words", "Advanced Signal Processing Techniques", true},
		{"numbered section", "1.1 Background Methods", true},
		{"bullet marker", "• viktiga punkter", true},
		{"dash marker", "- agenda item", true},
		{"english keyword", "about this chapter", true},
		{"swedish keyword", "en sammanfattning av resultaten", true},
		{"plain lowercase sentence", "the quick brown fox jumps again", false},
		{"empty line", "", false},
		{"short caps below threshold", "AB", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsHeading(tt.line); got != tt.expected {
				t.Errorf("IsHeading(%q) = %v, expected %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestEstimateLevel(t *testing.T) {
	c := NewHeadingClassifier(config.Default())

	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"short all caps", "INTRODUCTION", 1},
		{"long all caps falls through", "RESULTS OF THE FIRST NATIONAL SURVEY ROUND", 4},
		{"multi level numbering", "1.1 Background Methods", 3},
		{"numbered with dot", "1. Introduction", 3},
		{"numbered with paren", "2) Methods", 3},
		{"bare digit prefix", "1 Introduction", 2},
		{"two digit prefix", "12 Appendix items", 2},
		{"single digit alone", "7", 2},
		{"short plain", "Course outline", 2},
		{"medium plain", "A moderately long heading here", 3},
		{"long plain", "An even longer heading that keeps going for a while", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.EstimateLevel(tt.line)
			if got != tt.expected {
				t.Errorf("EstimateLevel(%q) = %d, expected %d", tt.line, got, tt.expected)
			}
			if got < 1 || got > 6 {
				t.Errorf("EstimateLevel(%q) = %d, out of range", tt.line, got)
			}
		})
	}
}

func TestDetectAll(t *testing.T) {
	c := NewHeadingClassifier(config.Default())

	lines := []core.TextLine{
		{Page: 1, Text: "INTRODUCTION"},
		{Page: 1, Text: "this paragraph rambles on without any structure at all"},
		{Page: 2, Text: "1.1 Background Methods"},
		{Page: 3, Text: "It ends with a period."},
	}

	got := c.DetectAll(lines)

	want := []core.HeadingCandidate{
		{Page: 1, Text: "INTRODUCTION", Level: 1},
		{Page: 2, Text: "1.1 Background Methods", Level: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDetectAllLevelsInRange(t *testing.T) {
	c := NewHeadingClassifier(config.Default())

	var lines []core.TextLine
	for _, text := range []string{
		"OVERVIEW", "1. First", "2.1 Nested", "• bullet", "- dash",
		"Some Capitalized Title Words Here", "kapitel fyra",
	} {
		lines = append(lines, core.TextLine{Page: 1, Text: text})
	}

	for _, h := range c.DetectAll(lines) {
		if h.Level < 1 || h.Level > 6 {
			t.Errorf("heading %q has level %d outside [1,6]", h.Text, h.Level)
		}
	}
}
