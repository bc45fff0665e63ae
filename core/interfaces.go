// Package core defines the pipeline interfaces and the course record for coursepipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata about where a course page came from.
type PageMetadata struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// CoursePage is the envelope the application renders: the parsed record
// plus information that is not part of the record itself.
type CoursePage struct {
	Metadata    PageMetadata  `json:"metadata"`
	Course      Course        `json:"course"`
	Description string        `json:"description,omitempty"` // Markdown
	Details     CourseDetails `json:"details"`
}

// CourseDetails is the rest of what a course page says about a course.
// Every field is optional; pages vary in which sections they carry.
type CourseDetails struct {
	PrimaryTitle  string         `json:"primary_title,omitempty"`
	EnglishTitle  string         `json:"english_title,omitempty"`
	StudyBoard    string         `json:"study_board,omitempty"`
	Departments   []string       `json:"departments,omitempty"`
	Faculty       string         `json:"faculty,omitempty"`
	Coordinators  []string       `json:"coordinators,omitempty"`
	Lecturers     []string       `json:"lecturers,omitempty"`
	Prerequisites string         `json:"prerequisites,omitempty"` // Markdown
	Exam          []Pair         `json:"exam,omitempty"`
	Workload      []WorkloadItem `json:"workload,omitempty"`
	LastModified  string         `json:"last_modified,omitempty"`
}

// WorkloadItem is one row of the course workload table.
type WorkloadItem struct {
	Activity string  `json:"activity"`
	Hours    float64 `json:"hours"`
}

// Pair is one label/value entry of a definition list, in document order.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Node is the read-only view of an HTML element the parser needs.
type Node interface {
	// Tag returns the lowercase element name.
	Tag() string
	// Children returns the element children in document order.
	Children() []Node
	// QuerySelector returns every descendant matching the CSS selector.
	QuerySelector(selector string) ([]Node, error)
	// InnerText returns the rendered text with whitespace collapsed.
	InnerText() string
}

// Document is the read-only view of a parsed HTML page.
type Document interface {
	FindByID(id string) (Node, bool)
	FindAllByClass(class string) []Node
}

// Fetcher retrieves raw HTML from a URL or path.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Locator finds the definition list holding the course information.
type Locator interface {
	Locate(doc Document) (Node, error)
}

// PairExtractor turns a definition list into ordered label/value pairs.
type PairExtractor interface {
	Extract(dl Node) ([]Pair, error)
}

// Coercer turns label/value pairs into a complete course record.
type Coercer interface {
	Coerce(pairs []Pair) (Course, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a parsed course page into a final output format.
type Renderer interface {
	Render(page CoursePage) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
