// Package render — PDF renderer.
// Renders the report as a styled PDF using gofpdf.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/erik-winther/tagpipe/core"
)

// PDFRenderer renders the report as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(rep *core.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; translate so Swedish and German text
	// survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Accessibility Report", "", "L", false)
	pdf.Ln(4)

	if a := rep.Analysis; a != nil {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("File: "+a.File), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)

		sectionHeading(pdf, "Analysis")
		rows := [][2]string{
			{"Document type", a.DocumentType},
			{"Format", a.Format},
			{"Language", a.Language},
			{"Pages", strconv.Itoa(a.Pages)},
			{"Words", strconv.Itoa(a.Words)},
			{"Images", strconv.Itoa(a.Images)},
			{"Tags", strings.Join(a.Tags, ", ")},
		}
		for _, row := range rows {
			labeledRow(pdf, tr, row[0], row[1])
		}

		sectionHeading(pdf, "Suggested metadata")
		author := a.Metadata.Author
		if author == "" {
			author = "(not detected)"
		}
		labeledRow(pdf, tr, "Title", a.Metadata.Title)
		labeledRow(pdf, tr, "Author", author)
		labeledRow(pdf, tr, "Subject", a.Metadata.Subject)
		labeledRow(pdf, tr, "Keywords", a.Metadata.Keywords)

		if len(a.Headings) > 0 {
			sectionHeading(pdf, "Detected headings")
			pdf.SetFont("Helvetica", "", 10)
			for _, h := range a.Headings {
				level := core.ClampLevel(h.Level)
				indent := strings.Repeat("    ", level-1)
				line := fmt.Sprintf("%sH%d  %s  (page %d)", indent, level, h.Text, h.Page)
				pdf.MultiCell(0, 5, tr(line), "", "L", false)
			}
		}
	}

	if v := rep.Verification; v != nil {
		sectionHeading(pdf, "Verification")
		for _, c := range v.Checks {
			status := "[OK]"
			pdf.SetTextColor(0, 128, 0)
			if !c.Passed {
				status = "[MISSING]"
				pdf.SetTextColor(180, 0, 0)
			}
			pdf.SetFont("Courier", "B", 10)
			pdf.CellFormat(30, 5, status, "", 0, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, c.Name, "", "L", false)
		}

		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		counts := fmt.Sprintf("Heading elements: %d. Figure elements with alt text: %d.",
			v.HeadingElements, v.FiguresWithAlt)
		pdf.MultiCell(0, 5, counts, "", "L", false)

		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		if v.Passed {
			pdf.SetTextColor(0, 128, 0)
			pdf.MultiCell(0, 6, "All accessibility checks passed.", "", "L", false)
		} else {
			pdf.SetTextColor(180, 0, 0)
			pdf.MultiCell(0, 6, "Some accessibility features are missing.", "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}

	if rep.Output != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr("Accessible PDF created: "+rep.Output), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func sectionHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.Ln(1)
}

func labeledRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}
