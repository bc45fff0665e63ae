// Package parse chains the course pipeline stages:
// locate → extract → coerce, plus the page envelope around the record
// (metadata, description and course details).
package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/coerce"
	"github.com/gaurav-prasanna/coursepipe/core/extract"
	"github.com/gaurav-prasanna/coursepipe/core/htmldoc"
	"github.com/gaurav-prasanna/coursepipe/core/locate"
	"github.com/gaurav-prasanna/coursepipe/core/normalize"
)

// descriptionID is the region holding the free-text course description.
const descriptionID = "course-content"

// Parser turns course pages into records. It holds no per-call state and
// is safe for concurrent use.
type Parser struct {
	Locator    core.Locator
	Extractor  core.PairExtractor
	Coercer    core.Coercer
	Normalizer core.Normalizer
}

// New creates a Parser with the default stages.
func New() *Parser {
	return &Parser{
		Locator:    locate.New(),
		Extractor:  extract.New(),
		Coercer:    coerce.New(),
		Normalizer: normalize.New(),
	}
}

// Course runs a parsed document through the pipeline.
func (p *Parser) Course(doc core.Document) (core.Course, error) {
	// 1. Locate the course information list
	dl, err := p.Locator.Locate(doc)
	if err != nil {
		return core.Course{}, fmt.Errorf("locate: %w", err)
	}

	// 2. Pair labels with values
	pairs, err := p.Extractor.Extract(dl)
	if err != nil {
		return core.Course{}, fmt.Errorf("extract: %w", err)
	}

	// 3. Coerce into a record
	course, err := p.Coercer.Coerce(pairs)
	if err != nil {
		return core.Course{}, fmt.Errorf("coerce: %w", err)
	}
	return course, nil
}

// Page parses raw HTML and wraps the record with page metadata and the
// course description.
func (p *Parser) Page(source, html string) (*core.CoursePage, error) {
	doc, err := htmldoc.ParseString(html)
	if err != nil {
		return nil, err
	}

	course, err := p.Course(doc)
	if err != nil {
		return nil, err
	}

	description, err := p.markdown(doc, descriptionID)
	if err != nil {
		return nil, fmt.Errorf("describe: %w", err)
	}

	details, err := p.details(doc, course)
	if err != nil {
		return nil, fmt.Errorf("details: %w", err)
	}

	return &core.CoursePage{
		Metadata: core.PageMetadata{
			Source:    source,
			Title:     doc.Title(),
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Course:      course,
		Description: description,
		Details:     details,
	}, nil
}

// markdown converts the region with the given id to Markdown. Pages
// without the region yield an empty string.
func (p *Parser) markdown(doc core.Document, id string) (string, error) {
	if p.Normalizer == nil {
		return "", nil
	}
	node, ok := doc.FindByID(id)
	if !ok {
		return "", nil
	}
	region, ok := node.(interface{ OuterHTML() (string, error) })
	if !ok {
		return "", nil
	}
	html, err := region.OuterHTML()
	if err != nil {
		return "", err
	}
	markdown, err := p.Normalizer.Normalize(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
