// Package extract implements the PairExtractor interface.
// It walks the children of a definition list in document order, pairing
// every <dt> label with the <dd> value that follows it.
package extract

import (
	"fmt"

	"github.com/gaurav-prasanna/coursepipe/core"
)

const stage = "dl"

// DLExtractor pairs <dt>/<dd> children of a definition list.
type DLExtractor struct{}

// New creates a DLExtractor.
func New() *DLExtractor {
	return &DLExtractor{}
}

// Extract returns the label/value pairs of dl in document order.
func (e *DLExtractor) Extract(dl core.Node) ([]core.Pair, error) {
	var (
		pairs   []core.Pair
		label   string
		pending bool
	)

	for i, child := range dl.Children() {
		switch tag := child.Tag(); tag {
		case "dt":
			if pending {
				return nil, structural("dt %q at position %d follows dt %q without a dd", child.InnerText(), i, label)
			}
			label, pending = child.InnerText(), true
		case "dd":
			if !pending {
				return nil, structural("dd at position %d has no preceding dt", i)
			}
			pairs = append(pairs, core.Pair{Label: label, Value: child.InnerText()})
			label, pending = "", false
		default:
			return nil, structural("expected dt or dd element, got <%s> at position %d", tag, i)
		}
	}

	// A dangling label means the list had an odd number of elements.
	if pending {
		return nil, structural("odd number of elements in dl (label %q has no value)", label)
	}
	return pairs, nil
}

func structural(format string, args ...any) error {
	return &core.StructuralError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}
