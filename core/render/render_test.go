package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/erik-winther/tagpipe/core"
)

var _ core.Renderer = (*TextRenderer)(nil)
var _ core.Renderer = (*JSONRenderer)(nil)
var _ core.Renderer = (*MarkdownRenderer)(nil)
var _ core.Renderer = (*PDFRenderer)(nil)

func sampleReport() *core.Report {
	return &core.Report{
		Analysis: &core.Analysis{
			File:         "lecture_01.pdf",
			Pages:        4,
			Words:        1200,
			Characters:   8000,
			Images:       2,
			Language:     "sv",
			Candidates:   []core.LanguageScore{{Code: "sv", Confidence: 0.93}, {Code: "en", Confidence: 0.05}},
			DocumentType: "lecture",
			Format:       "slides",
			Tags:         []string{"lecture", "slides", "brief"},
			Metadata: core.Metadata{
				Title:    "Föreläsning 1",
				Author:   "",
				Subject:  "Lecture - lecture, slides, brief",
				Keywords: "lecture, slides, brief",
				Language: "sv",
				Sources: map[string]core.FieldSource{
					"title":    core.SourceContent,
					"language": core.SourceContent,
				},
			},
			Headings: []core.HeadingCandidate{
				{Page: 1, Text: "INTRODUKTION", Level: 1},
				{Page: 2, Text: "1.1 Bakgrund", Level: 3},
			},
		},
		Verification: &core.Verification{
			Checks: []core.Check{
				{Name: "StructTreeRoot", Passed: true},
				{Name: "Author", Passed: false},
			},
			HeadingElements: 2,
			FigureElements:  1,
			FiguresWithAlt:  1,
			Passed:          false,
		},
		Output: "lecture_01_accessible.pdf",
	}
}

func TestTextRenderer(t *testing.T) {
	out, err := NewTextRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"PDF Accessibility Analysis: lecture_01.pdf",
		"Document Type:    lecture",
		"Format:           slides",
		"Primary Language: sv",
		"Page Count:       4",
		"sv: 93.00%",
		"  - lecture",
		"Author:   (not detected)",
		"[OK] StructTreeRoot",
		"[MISSING] Author",
		"Headings: 2",
		"Figures with alt text: 1",
		"PARTIAL: Some features may be missing",
		"Accessible PDF created: lecture_01_accessible.pdf",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "SUCCESS") {
		t.Error("failed verification should not report SUCCESS")
	}
}

func TestTextRendererSuccess(t *testing.T) {
	rep := sampleReport()
	rep.Verification = &core.Verification{
		Checks: []core.Check{{Name: "StructTreeRoot", Passed: true}},
		Passed: true,
	}

	out, err := NewTextRenderer().Render(rep)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "SUCCESS: PDF fully enhanced for accessibility!") {
		t.Errorf("missing success banner:\n%s", out)
	}
}

func TestTextRendererVerificationOnly(t *testing.T) {
	rep := &core.Report{Verification: &core.Verification{
		Checks: []core.Check{{Name: "Title", Passed: true}},
		Passed: true,
	}}

	out, err := NewTextRenderer().Render(rep)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "Analysis") {
		t.Errorf("report without analysis should not print an analysis block:\n%s", out)
	}
}

func TestJSONRendererRoundTrip(t *testing.T) {
	rep := sampleReport()
	out, err := NewJSONRenderer().Render(rep)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded core.Report
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Analysis.DocumentType != "lecture" {
		t.Errorf("document type = %q", decoded.Analysis.DocumentType)
	}
	if len(decoded.Verification.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(decoded.Verification.Checks))
	}
	if decoded.Output != rep.Output {
		t.Errorf("output = %q, want %q", decoded.Output, rep.Output)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Accessibility Report",
		"## Analysis: lecture_01.pdf",
		"| Document type | lecture |",
		"- **Title**: Föreläsning 1 _(content)_",
		"- **Author**: (not detected)",
		"- H1: INTRODUKTION (page 1)",
		"    - H3: 1.1 Bakgrund (page 2)",
		"- [x] StructTreeRoot",
		"- [ ] Author",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown report missing %q\n%s", want, md)
		}
	}
}

func TestRenderersClampHeadingLevels(t *testing.T) {
	// Heading records from external files can carry out-of-range
	// levels; rendering must not blow up on them.
	rep := &core.Report{
		Analysis: &core.Analysis{
			File: "edited.pdf",
			Headings: []core.HeadingCandidate{
				{Page: 1, Text: "Zero level", Level: 0},
				{Page: 2, Text: "Too deep", Level: 9},
			},
		},
	}

	out, err := NewMarkdownRenderer().Render(rep)
	if err != nil {
		t.Fatalf("markdown render: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, "- H1: Zero level (page 1)") {
		t.Errorf("zero level not clamped to H1:\n%s", md)
	}
	if !strings.Contains(md, "H6: Too deep (page 2)") {
		t.Errorf("oversized level not clamped to H6:\n%s", md)
	}

	if _, err := NewPDFRenderer().Render(rep); err != nil {
		t.Fatalf("pdf render: %v", err)
	}
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header: %q", out[:min(len(out), 8)])
	}
	if len(out) < 500 {
		t.Errorf("suspiciously small PDF report: %d bytes", len(out))
	}
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		r    core.Renderer
		want string
	}{
		{NewTextRenderer(), ".txt"},
		{NewJSONRenderer(), ".json"},
		{NewMarkdownRenderer(), ".md"},
		{NewPDFRenderer(), ".pdf"},
	}
	for _, tt := range tests {
		if got := tt.r.Extension(); got != tt.want {
			t.Errorf("extension = %q, want %q", got, tt.want)
		}
	}
}
