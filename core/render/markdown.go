// Package render provides report renderers for the TagPipe pipeline.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/erik-winther/tagpipe/core"
)

// MarkdownRenderer writes the report as a Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the report into Markdown.
func (r *MarkdownRenderer) Render(rep *core.Report) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Accessibility Report\n")

	if a := rep.Analysis; a != nil {
		fmt.Fprintf(&b, "\n## Analysis: %s\n\n", a.File)
		b.WriteString("| Field | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Document type | %s |\n", a.DocumentType)
		fmt.Fprintf(&b, "| Format | %s |\n", a.Format)
		fmt.Fprintf(&b, "| Language | %s |\n", a.Language)
		fmt.Fprintf(&b, "| Pages | %d |\n", a.Pages)
		fmt.Fprintf(&b, "| Words | %d |\n", a.Words)
		fmt.Fprintf(&b, "| Images | %d |\n", a.Images)
		fmt.Fprintf(&b, "| Tags | %s |\n", strings.Join(a.Tags, ", "))

		b.WriteString("\n### Suggested metadata\n\n")
		writeField(&b, a.Metadata, "Title", a.Metadata.Title)
		author := a.Metadata.Author
		if author == "" {
			author = "(not detected)"
		}
		writeField(&b, a.Metadata, "Author", author)
		writeField(&b, a.Metadata, "Subject", a.Metadata.Subject)
		writeField(&b, a.Metadata, "Keywords", a.Metadata.Keywords)
		writeField(&b, a.Metadata, "Language", a.Metadata.Language)

		if len(a.Headings) > 0 {
			b.WriteString("\n### Detected headings\n\n")
			for _, h := range a.Headings {
				level := core.ClampLevel(h.Level)
				indent := strings.Repeat("  ", level-1)
				fmt.Fprintf(&b, "%s- H%d: %s (page %d)\n", indent, level, h.Text, h.Page)
			}
		}
	}

	if v := rep.Verification; v != nil {
		b.WriteString("\n## Verification\n\n")
		for _, c := range v.Checks {
			mark := " "
			if c.Passed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, c.Name)
		}
		fmt.Fprintf(&b, "\nHeading elements: %d. Figure elements with alt text: %d.\n",
			v.HeadingElements, v.FiguresWithAlt)
		if v.Passed {
			b.WriteString("\n**Result: all accessibility checks passed.**\n")
		} else {
			b.WriteString("\n**Result: some accessibility features are missing.**\n")
		}
	}

	if rep.Output != "" {
		fmt.Fprintf(&b, "\nAccessible PDF created: `%s`\n", rep.Output)
	}

	return []byte(b.String()), nil
}

// writeField writes one metadata bullet, with its provenance when the
// synthesizer recorded one.
func writeField(b *strings.Builder, m core.Metadata, label, value string) {
	if src, ok := m.Sources[strings.ToLower(label)]; ok {
		fmt.Fprintf(b, "- **%s**: %s _(%s)_\n", label, value, src)
		return
	}
	fmt.Fprintf(b, "- **%s**: %s\n", label, value)
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
