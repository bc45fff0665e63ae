// Package render provides output renderers for parsed course pages.
package render

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// row is one labelled line of the course field table.
type row struct {
	Label string
	Value string
}

// courseRows lists the record fields in display order.
func courseRows(c core.Course) []row {
	return []row{
		{"Course code", c.ID()},
		{"ECTS", strconv.FormatFloat(c.ECTS(), 'f', -1, 64)},
		{"Block", join(c.Block())},
		{"Schedule", join(c.Schedule())},
		{"Language", string(c.Language())},
		{"Duration", durationLabel(c.Duration())},
		{"Level", join(c.Degree())},
		{"Capacity", c.Capacity().String()},
	}
}

// detailRows lists the page details that are present, in display order.
func detailRows(d core.CourseDetails) []row {
	var rows []row
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, row{label, value})
		}
	}
	add("English title", d.EnglishTitle)
	add("Study board", d.StudyBoard)
	add("Departments", strings.Join(d.Departments, "; "))
	add("Faculty", d.Faculty)
	add("Coordinators", strings.Join(d.Coordinators, "; "))
	add("Lecturers", strings.Join(d.Lecturers, "; "))
	add("Last modified", d.LastModified)
	return rows
}

// pairRows turns definition list pairs into rows.
func pairRows(pairs []core.Pair) []row {
	rows := make([]row, len(pairs))
	for i, p := range pairs {
		rows[i] = row{p.Label, p.Value}
	}
	return rows
}

// workloadRows formats hours without trailing zeros.
func workloadRows(items []core.WorkloadItem) []row {
	rows := make([]row, len(items))
	for i, item := range items {
		rows[i] = row{item.Activity, strconv.FormatFloat(item.Hours, 'f', -1, 64)}
	}
	return rows
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func durationLabel(d core.Duration) string {
	switch d {
	case core.DurationOneUnit:
		return "1 block"
	case core.DurationTwoUnits:
		return "2 blocks"
	}
	return string(d)
}

// title picks the heading for a course page.
func title(page core.CoursePage) string {
	switch {
	case page.Metadata.Title != "":
		return page.Metadata.Title
	case page.Details.PrimaryTitle != "":
		return page.Details.PrimaryTitle
	}
	return page.Course.ID()
}
