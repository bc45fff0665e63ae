// Package htmldoc adapts goquery to the read-only DOM view the course
// parser consumes (core.Document and core.Node).
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// Document wraps a parsed goquery document.
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FindByID returns the first element whose id attribute equals id.
func (d *Document) FindByID(id string) (core.Node, bool) {
	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	if sel.Length() == 0 {
		return nil, false
	}
	return &Node{sel: sel.First()}, true
}

// FindAllByClass returns every element carrying class, in document order.
func (d *Document) FindAllByClass(class string) []core.Node {
	sel := d.doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
	return wrap(sel)
}

// Title returns the text of the page's <title>, if any.
func (d *Document) Title() string {
	return collapse(d.doc.Find("title").First().Text())
}

// Node wraps a single element selection.
type Node struct {
	sel *goquery.Selection
}

// Tag returns the element name.
func (n *Node) Tag() string {
	if node := n.sel.Get(0); node != nil && node.Type == html.ElementNode {
		return strings.ToLower(node.Data)
	}
	return ""
}

// Children returns the element children; text and comment nodes are skipped.
func (n *Node) Children() []core.Node {
	return wrap(n.sel.Children())
}

// QuerySelector returns every descendant matching selector.
func (n *Node) QuerySelector(selector string) ([]core.Node, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	return wrap(n.sel.FindMatcher(m)), nil
}

// InnerText returns the text of the element and its descendants with
// runs of whitespace, including no-break spaces, collapsed to one space.
func (n *Node) InnerText() string {
	return collapse(n.sel.Text())
}

// TextWithout returns the inner text as if every descendant matching
// selector had been removed. The document itself is left untouched.
func (n *Node) TextWithout(selector string) string {
	clone := n.sel.Clone()
	clone.Find(selector).Remove()
	return collapse(clone.Text())
}

// OuterHTML serializes the element.
func (n *Node) OuterHTML() (string, error) {
	out, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", n.Tag(), err)
	}
	return out, nil
}

func wrap(sel *goquery.Selection) []core.Node {
	nodes := make([]core.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
