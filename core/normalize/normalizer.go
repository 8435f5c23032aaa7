// Package normalize cleans raw extracted page text and builds the
// line inventory, which serves as the canonical input for the heading
// and document-type classifiers.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erik-winther/tagpipe/core"
)

// TextNormalizer cleans extractor output page by page.
type TextNormalizer struct{}

// New creates a TextNormalizer.
func New() *TextNormalizer {
	return &TextNormalizer{}
}

// Clean normalizes one page of extracted text: line endings become LF,
// control and zero-width characters are dropped, and whitespace runs
// within each line collapse to a single space.
func (n *TextNormalizer) Clean(page string) string {
	page = strings.ReplaceAll(page, "\r\n", "\n")
	page = strings.ReplaceAll(page, "\r", "\n")

	var b strings.Builder
	b.Grow(len(page))
	for _, r := range page {
		if r == '\n' || r == '\t' || !isDropped(r) {
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// Document cleans every page of doc in place.
func (n *TextNormalizer) Document(doc *core.Document) {
	for i, page := range doc.Pages {
		doc.Pages[i] = n.Clean(page)
	}
}

// Lines flattens doc into trimmed, non-empty lines tagged with their
// 1-based page number and basic counts.
func (n *TextNormalizer) Lines(doc *core.Document) []core.TextLine {
	var lines []core.TextLine
	for i, page := range doc.Pages {
		for _, raw := range strings.Split(page, "\n") {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			lines = append(lines, core.TextLine{
				Page:  i + 1,
				Text:  text,
				Chars: utf8.RuneCountInString(text),
				Words: len(strings.Fields(text)),
			})
		}
	}
	return lines
}

// isDropped reports whether r is a control or zero-width character
// that should not survive normalization.
func isDropped(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\uFEFF':
		return true
	}
	return unicode.IsControl(r)
}
