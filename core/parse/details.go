package parse

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// Page regions holding the course details.
const (
	contentID         = "content"
	panelClass        = "panel-body"
	mainContentClass  = "main-content"
	lastModifiedClass = "last-modified"
	englishTitleID    = "course-language"
	examsID           = "course-exams1"
	workloadID        = "course-load"
)

// prerequisiteIDs name the prerequisites region; pages use either.
var prerequisiteIDs = []string{"course-skills", "course-prerequisites"}

type detail int

const (
	detailNone detail = iota
	detailStudyBoard
	detailDepartments
	detailFaculty
	detailCoordinators
	detailLecturers
)

// detailLabels maps lowercased panel headings and list labels to the
// detail they introduce, in Danish and English.
var detailLabels = map[string]detail{
	"studienævn":              detailStudyBoard,
	"study board":             detailStudyBoard,
	"udbydende institut":      detailDepartments,
	"udbydende institutter":   detailDepartments,
	"contracting department":  detailDepartments,
	"contracting departments": detailDepartments,
	"udbydende fakultet":      detailFaculty,
	"contracting faculty":     detailFaculty,
	"kursusansvarlige":        detailCoordinators,
	"course coordinator":      detailCoordinators,
	"course coordinators":     detailCoordinators,
	"undervisere":             detailLecturers,
	"lecturers":               detailLecturers,
}

// details collects the course details around the record. Sections the
// page lacks, or lists too malformed to pair, are left empty.
func (p *Parser) details(doc core.Document, course core.Course) (core.CourseDetails, error) {
	var d core.CourseDetails

	if panel := infoPanel(doc); panel != nil {
		p.panelDetails(panel, &d)
	}

	if mains := doc.FindAllByClass(mainContentClass); len(mains) > 0 {
		if h1 := query(mains[0], "h1"); len(h1) > 0 {
			d.PrimaryTitle = primaryTitle(h1[0].InnerText(), course.ID())
		}
	}
	if n, ok := doc.FindByID(englishTitleID); ok {
		d.EnglishTitle = n.InnerText()
	}

	for _, id := range prerequisiteIDs {
		md, err := p.markdown(doc, id)
		if err != nil {
			return core.CourseDetails{}, err
		}
		if md != "" {
			d.Prerequisites = md
			break
		}
	}

	if n, ok := doc.FindByID(examsID); ok {
		if lists := query(n, "dl"); len(lists) > 0 {
			if pairs, err := p.Extractor.Extract(lists[0]); err == nil {
				d.Exam = pairs
			}
		}
	}

	if n, ok := doc.FindByID(workloadID); ok {
		d.Workload = workload(texts(query(n, "li")))
	}
	return d, nil
}

// infoPanel returns the panel with the most <h5> section headings, which
// is the one listing the course staff. Ties go to the first panel.
func infoPanel(doc core.Document) core.Node {
	content, ok := doc.FindByID(contentID)
	if !ok {
		return nil
	}
	var best core.Node
	most := -1
	for _, panel := range query(content, "."+panelClass) {
		if n := len(query(panel, "h5")); n > most {
			best, most = panel, n
		}
	}
	return best
}

// panelDetails reads the label/value list and the <h5> sections of the
// information panel. Each heading is followed by a list or a paragraph.
func (p *Parser) panelDetails(panel core.Node, d *core.CourseDetails) {
	children := panel.Children()
	for i, child := range children {
		switch child.Tag() {
		case "dl":
			pairs, err := p.Extractor.Extract(child)
			if err != nil {
				continue
			}
			for _, pair := range pairs {
				assign(d, pair.Label, []string{pair.Value})
			}
		case "h5":
			if i+1 < len(children) && children[i+1].Tag() != "h5" {
				assign(d, child.InnerText(), items(children[i+1]))
			}
		}
	}

	if nodes := query(panel, "."+lastModifiedClass); len(nodes) > 0 {
		d.LastModified = nodes[0].InnerText()
	}
}

func assign(d *core.CourseDetails, label string, values []string) {
	if len(values) == 0 {
		return
	}
	switch detailLabels[strings.ToLower(strings.TrimSpace(label))] {
	case detailStudyBoard:
		d.StudyBoard = values[0]
	case detailDepartments:
		d.Departments = values
	case detailFaculty:
		d.Faculty = values[0]
	case detailCoordinators:
		d.Coordinators = values
	case detailLecturers:
		d.Lecturers = values
	}
}

// items returns the entries of a <ul>, or the text of any other element.
func items(n core.Node) []string {
	if n.Tag() == "ul" {
		return texts(query(n, "li"))
	}
	return texts([]core.Node{n})
}

// texts returns the non-empty plain text of each node. E-mail addresses
// are wrapped in <span> elements and left out.
func texts(nodes []core.Node) []string {
	var out []string
	for _, n := range nodes {
		text := n.InnerText()
		if s, ok := n.(interface{ TextWithout(string) string }); ok {
			text = s.TextWithout("span")
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// workload pairs alternating activity and hours entries. Pairs whose
// hours are not a number, such as the header row, are skipped.
func workload(entries []string) []core.WorkloadItem {
	var out []core.WorkloadItem
	for i := 0; i+1 < len(entries); i += 2 {
		hours, err := strconv.ParseFloat(strings.Replace(entries[i+1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		out = append(out, core.WorkloadItem{Activity: entries[i], Hours: hours})
	}
	return out
}

// primaryTitle drops the course code the heading starts with.
func primaryTitle(heading, id string) string {
	if rest, ok := strings.CutPrefix(heading, id); ok {
		return strings.TrimSpace(rest)
	}
	return heading
}

// query runs a constant selector. Constant selectors always compile.
func query(n core.Node, selector string) []core.Node {
	nodes, _ := n.QuerySelector(selector)
	return nodes
}
