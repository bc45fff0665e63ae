// Package locate implements the Locator interface.
// It finds the definition list holding the course information by:
//  1. Checking the page has a content region (#content) at all
//  2. Picking the first .panel-body that contains exactly one <dl>
package locate

import (
	"fmt"

	"github.com/gaurav-prasanna/coursepipe/core"
)

const (
	contentID  = "content"
	panelClass = "panel-body"
	listTag    = "dl"
)

// DLLocator finds the course information list on a course page.
type DLLocator struct{}

// New creates a DLLocator.
func New() *DLLocator {
	return &DLLocator{}
}

// Locate returns the course information <dl>. Pages without a content
// region yield core.ErrUnrecognizedPage.
func (l *DLLocator) Locate(doc core.Document) (core.Node, error) {
	if _, ok := doc.FindByID(contentID); !ok {
		return nil, core.ErrUnrecognizedPage
	}

	// Several panel bodies share the markup; only the course information
	// panel holds a single definition list.
	for _, panel := range doc.FindAllByClass(panelClass) {
		lists, err := panel.QuerySelector(listTag)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", panelClass, err)
		}
		if len(lists) == 1 {
			return lists[0], nil
		}
	}

	return nil, &core.StructuralError{Stage: panelClass, Reason: "no dl element found in panel-body"}
}
