// Package render — Markdown renderer.
// Writes the course as a heading, a field table, the description and
// the prerequisite, exam and workload sections.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// MarkdownRenderer writes a course page as Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown document for page.
func (r *MarkdownRenderer) Render(page core.CoursePage) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title(page))
	if page.Metadata.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", page.Metadata.Source)
	}

	writeTable(&b, "Field", "Value", append(courseRows(page.Course), detailRows(page.Details)...))

	d := page.Details
	if page.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", page.Description)
	}
	if d.Prerequisites != "" {
		fmt.Fprintf(&b, "\n## Recommended prerequisites\n\n%s\n", d.Prerequisites)
	}
	if len(d.Exam) > 0 {
		b.WriteString("\n## Exam\n\n")
		writeTable(&b, "Item", "Value", pairRows(d.Exam))
	}
	if len(d.Workload) > 0 {
		b.WriteString("\n## Workload\n\n")
		writeTable(&b, "Activity", "Hours", workloadRows(d.Workload))
	}
	return []byte(b.String()), nil
}

func writeTable(b *strings.Builder, left, right string, rows []row) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", left, right)
	for _, line := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", cell(line.Label), cell(line.Value))
	}
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
