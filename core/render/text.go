// Package render — plain text renderer, matching the console format.
package render

import (
	"fmt"
	"strings"

	"github.com/erik-winther/tagpipe/core"
)

const (
	bannerNarrow = 60
	bannerWide   = 70
)

// TextRenderer renders the report as plain text: the analysis summary
// followed by the verification checklist.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render writes the report in the console format.
func (r *TextRenderer) Render(rep *core.Report) ([]byte, error) {
	var b strings.Builder

	if a := rep.Analysis; a != nil {
		bar := strings.Repeat("=", bannerNarrow)
		fmt.Fprintf(&b, "%s\n", bar)
		fmt.Fprintf(&b, "PDF Accessibility Analysis: %s\n", a.File)
		fmt.Fprintf(&b, "%s\n\n", bar)
		fmt.Fprintf(&b, "Document Type:    %s\n", a.DocumentType)
		fmt.Fprintf(&b, "Format:           %s\n", a.Format)
		fmt.Fprintf(&b, "Primary Language: %s\n", a.Language)
		fmt.Fprintf(&b, "Page Count:       %d\n", a.Pages)

		if len(a.Candidates) > 0 {
			b.WriteString("\nLanguage Detection:\n")
			for _, c := range a.Candidates {
				fmt.Fprintf(&b, "  %s: %.2f%%\n", c.Code, c.Confidence*100)
			}
		}
		if len(a.Tags) > 0 {
			b.WriteString("\nContent Tags:\n")
			for _, tag := range a.Tags {
				fmt.Fprintf(&b, "  - %s\n", tag)
			}
		}

		author := a.Metadata.Author
		if author == "" {
			author = "(not detected)"
		}
		b.WriteString("\nSuggested Metadata:\n")
		fmt.Fprintf(&b, "  Title:    %s\n", a.Metadata.Title)
		fmt.Fprintf(&b, "  Author:   %s\n", author)
		fmt.Fprintf(&b, "  Subject:  %s\n", a.Metadata.Subject)
		fmt.Fprintf(&b, "  Keywords: %s\n", a.Metadata.Keywords)
	}

	if v := rep.Verification; v != nil {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		bar := strings.Repeat("=", bannerWide)
		fmt.Fprintf(&b, "%s\nVerification\n%s\n", bar, bar)
		for _, c := range v.Checks {
			status := "[OK]"
			if !c.Passed {
				status = "[MISSING]"
			}
			fmt.Fprintf(&b, "  %s %s\n", status, c.Name)
		}
		b.WriteString("\nStructure elements:\n")
		fmt.Fprintf(&b, "  Headings: %d\n", v.HeadingElements)
		fmt.Fprintf(&b, "  Figures with alt text: %d\n", v.FiguresWithAlt)

		fmt.Fprintf(&b, "\n%s\n", bar)
		if v.Passed {
			b.WriteString("SUCCESS: PDF fully enhanced for accessibility!\n")
		} else {
			b.WriteString("PARTIAL: Some features may be missing\n")
		}
		fmt.Fprintf(&b, "%s\n", bar)
	}

	if rep.Output != "" {
		fmt.Fprintf(&b, "\nAccessible PDF created: %s\n", rep.Output)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
