// Package render — PDF renderer.
// Lays out a course sheet using gofpdf: title, field table, the
// description rendered from its Markdown, then exam and workload tables.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a course page as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out page and returns the PDF bytes.
func (r *PDFRenderer) Render(page core.CoursePage) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; Danish letters need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title(page)), "", "L", false)
	pdf.Ln(2)

	if page.Metadata.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+page.Metadata.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	renderTable(pdf, tr, append(courseRows(page.Course), detailRows(page.Details)...))

	d := page.Details
	if page.Description != "" {
		renderHeading(pdf, "Description", 2)
		renderMarkdown(pdf, tr, page.Description)
	}
	if d.Prerequisites != "" {
		renderHeading(pdf, "Recommended prerequisites", 2)
		renderMarkdown(pdf, tr, d.Prerequisites)
	}
	if len(d.Exam) > 0 {
		renderHeading(pdf, "Exam", 2)
		renderTable(pdf, tr, pairRows(d.Exam))
	}
	if len(d.Workload) > 0 {
		renderHeading(pdf, "Workload", 2)
		renderTable(pdf, tr, workloadRows(d.Workload))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderTable writes label/value rows with alternating shading.
func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, rows []row) {
	pdf.SetFillColor(245, 245, 245)
	for i, line := range rows {
		fill := i%2 == 0
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, tr(line.Label), "", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, tr(line.Value), "", 1, "L", fill, 0, "")
	}
}

// renderMarkdown writes description Markdown line by line. Numbered list
// items are plain paragraphs.
func renderMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), level+1)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

var (
	italicRun  = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCode = regexp.MustCompile("`([^`]+)`")
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRun.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
