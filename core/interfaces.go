// Package core defines the pipeline types and interfaces for TagPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// Document holds the extracted text content of one PDF input.
type Document struct {
	Path     string
	Filename string
	Pages    []string // extracted text per page, index 0 = page 1
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FullText returns all page texts joined by newlines.
func (d *Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// WordCount returns the total number of whitespace-separated words.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.FullText()))
}

// CharCount returns the total number of characters across all pages.
func (d *Document) CharCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len([]rune(p))
	}
	return n
}

// TextLine is one non-empty, trimmed line of extracted text.
type TextLine struct {
	Page  int
	Text  string
	Chars int
	Words int
}

// HeadingCandidate is a line the heading classifier accepted.
// Level is always in [1,6].
type HeadingCandidate struct {
	Page  int    `json:"page"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// ClampLevel bounds a heading level to the range structure elements
// accept, 1 through 6.
func ClampLevel(n int) int {
	if n < 1 {
		return 1
	}
	if n > 6 {
		return 6
	}
	return n
}

// Section is a node in the nested document outline built from headings.
type Section struct {
	Heading  HeadingCandidate `json:"heading"`
	Children []Section        `json:"children,omitempty"`
}

// LanguageScore is one ranked language estimate.
type LanguageScore struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// LanguageEstimate holds the primary language and the ranked estimates.
// Confidences sum to at most 1.0.
type LanguageEstimate struct {
	Primary string          `json:"primary"`
	Scores  []LanguageScore `json:"candidates"`
}

// FieldSource records where a synthesized metadata field came from.
type FieldSource string

const (
	SourceEmbedded FieldSource = "embedded" // existing document metadata
	SourceContent  FieldSource = "content"  // inferred from page text
	SourceFilename FieldSource = "filename" // derived from the file name
	SourceDefault  FieldSource = "default"  // safe fallback value
	SourceOverride FieldSource = "override" // user-supplied flag
)

// Metadata is the accessibility metadata bundle written into the PDF.
// Sources maps field name (title, author, subject, keywords, language)
// to the provenance of its value.
type Metadata struct {
	Title    string                 `json:"title"`
	Author   string                 `json:"author"`
	Subject  string                 `json:"subject"`
	Keywords string                 `json:"keywords"`
	Language string                 `json:"language"`
	Sources  map[string]FieldSource `json:"sources,omitempty"`
}

// Image identifies an embedded image XObject in the document.
// Ordinal is 1-based and unique across the whole document.
type Image struct {
	Ordinal int    `json:"id"`
	Page    int    `json:"page"`
	ObjNr   int    `json:"-"`
	Alt     string `json:"alt,omitempty"`
}

// Analysis is the complete result of analyzing one document.
type Analysis struct {
	File         string             `json:"file"`
	Pages        int                `json:"pages"`
	Words        int                `json:"words"`
	Characters   int                `json:"characters"`
	Images       int                `json:"images"`
	Language     string             `json:"language"`
	Candidates   []LanguageScore    `json:"language_candidates"`
	DocumentType string             `json:"document_type"`
	Format       string             `json:"format"` // "slides" or "text-document"
	Tags         []string           `json:"tags"`
	Metadata     Metadata           `json:"metadata"`
	Headings     []HeadingCandidate `json:"headings"`
}

// Check is one item of the accessibility verification checklist.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Verification is the read-side checklist of a written PDF.
type Verification struct {
	Checks          []Check `json:"checks"`
	HeadingElements int     `json:"heading_elements"`
	FigureElements  int     `json:"figure_elements"`
	FiguresWithAlt  int     `json:"figures_with_alt"`
	Passed          bool    `json:"passed"`
}

// Report bundles everything the report renderers need.
type Report struct {
	Analysis     *Analysis     `json:"analysis,omitempty"`
	Verification *Verification `json:"verification,omitempty"`
	Output       string        `json:"output,omitempty"` // path of the written PDF
}

// Extractor produces per-page text from a PDF file.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Document, error)
}

// Resolver turns a CLI input (local path or URL) into a local file path.
// The returned cleanup func removes any temporary file and may be nil-safe.
type Resolver interface {
	Resolve(ctx context.Context, input string) (path string, cleanup func(), err error)
}

// Describer produces a short alt-text description for one image.
type Describer interface {
	Describe(ctx context.Context, data []byte, mime string) (string, error)
}

// Renderer converts a Report into a final output format.
type Renderer interface {
	Render(rep *Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
