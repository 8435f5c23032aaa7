// Package classify implements the heading and document-type heuristics.
// Both classifiers are pure functions over normalized text, built once
// from the loaded configuration tables.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/config"
)

// HeadingClassifier decides whether a line is a heading and estimates
// its outline level.
type HeadingClassifier struct {
	maxLength int
	keywords  []string
}

// NewHeadingClassifier builds a classifier from the loaded tables.
func NewHeadingClassifier(cfg *config.Config) *HeadingClassifier {
	return &HeadingClassifier{
		maxLength: cfg.Heading.MaxLength,
		keywords:  cfg.Heading.Keywords,
	}
}

// IsHeading reports whether a line of text looks like a heading.
// The triggers are independent and checked in fixed order: rejection on
// length or sentence-final punctuation first, then all-caps, mostly
// capitalized words, leading digit or bullet, and finally the keyword
// table.
func (c *HeadingClassifier) IsHeading(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	length := utf8.RuneCountInString(text)
	if length > c.maxLength {
		return false
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, ",") {
		return false
	}

	if length > 3 && isUpperString(text) {
		return true
	}

	words := strings.Fields(text)
	if len(words) > 1 {
		capitalized := 0
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if unicode.IsUpper(r) {
				capitalized++
			}
		}
		if float64(capitalized)/float64(len(words)) > 0.6 {
			return true
		}
	}

	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsDigit(first) || strings.HasPrefix(text, "•") || strings.HasPrefix(text, "-") {
		return true
	}

	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// EstimateLevel guesses the outline level of a heading line.
// Numbered lines map by numbering depth ("1." and "1)" style prefixes
// beat the bare leading digit), everything else falls back to length
// buckets. The result is always in [1,6].
func (c *HeadingClassifier) EstimateLevel(text string) int {
	text = strings.TrimSpace(text)
	runes := []rune(text)

	if len(runes) < 30 && isUpperString(text) {
		return 1
	}
	if len(runes) > 2 && unicode.IsDigit(runes[0]) && strings.ContainsRune(".):", runes[1]) {
		return 3
	}
	if len(runes) > 0 && unicode.IsDigit(runes[0]) && (len(runes) < 2 || !unicode.IsDigit(runes[1])) {
		return 2
	}

	switch {
	case len(runes) < 20:
		return 2
	case len(runes) < 40:
		return 3
	default:
		return 4
	}
}

// DetectAll runs the classifier over the line inventory and returns the
// accepted candidates in reading order.
func (c *HeadingClassifier) DetectAll(lines []core.TextLine) []core.HeadingCandidate {
	var headings []core.HeadingCandidate
	for _, line := range lines {
		if !c.IsHeading(line.Text) {
			continue
		}
		headings = append(headings, core.HeadingCandidate{
			Page:  line.Page,
			Text:  line.Text,
			Level: core.ClampLevel(c.EstimateLevel(line.Text)),
		})
	}
	return headings
}

// isUpperString reports whether s contains at least one cased letter
// and no lower-case letters.
func isUpperString(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
