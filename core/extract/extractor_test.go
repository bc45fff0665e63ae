package extract

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/htmldoc"
)

// fakeNode is an in-memory core.Node.
type fakeNode struct {
	tag      string
	text     string
	children []core.Node
}

func (n *fakeNode) Tag() string                               { return n.tag }
func (n *fakeNode) Children() []core.Node                     { return n.children }
func (n *fakeNode) QuerySelector(string) ([]core.Node, error) { return nil, nil }
func (n *fakeNode) InnerText() string                         { return n.text }

func dl(children ...core.Node) *fakeNode {
	return &fakeNode{tag: "dl", children: children}
}

func dt(text string) core.Node { return &fakeNode{tag: "dt", text: text} }
func dd(text string) core.Node { return &fakeNode{tag: "dd", text: text} }

func TestExtract(t *testing.T) {
	pairs, err := New().Extract(dl(
		dt("Sprog"), dd("Dansk"),
		dt("Point"), dd("7.5 ECTS"),
		dt("Placering"), dd("Blok 1"),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []core.Pair{
		{Label: "Sprog", Value: "Dansk"},
		{Label: "Point", Value: "7.5 ECTS"},
		{Label: "Placering", Value: "Blok 1"},
	}
	if !slices.Equal(pairs, want) {
		t.Errorf("Extract() = %v, want %v", pairs, want)
	}
}

func TestExtract_Empty(t *testing.T) {
	pairs, err := New().Extract(dl())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("expected no pairs, got %v", pairs)
	}
}

func TestExtract_OddLengthAlwaysStructural(t *testing.T) {
	// Every odd-length sequence of dt/dd children must be rejected,
	// whatever its content.
	tags := []string{"dt", "dd"}
	for n := 1; n <= 7; n += 2 {
		for mask := 0; mask < 1<<n; mask++ {
			var children []core.Node
			var shape []string
			for i := 0; i < n; i++ {
				tag := tags[(mask>>i)&1]
				shape = append(shape, tag)
				children = append(children, &fakeNode{tag: tag, text: "x"})
			}

			_, err := New().Extract(dl(children...))
			var se *core.StructuralError
			if !errors.As(err, &se) {
				t.Errorf("%s: expected StructuralError, got %v", strings.Join(shape, ","), err)
			}
		}
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		children []core.Node
		reason   string
	}{
		{"dangling label", []core.Node{dt("Sprog"), dd("Dansk"), dt("Point")}, "odd number of elements"},
		{"two labels", []core.Node{dt("Sprog"), dt("Point"), dd("Dansk"), dd("7.5")}, "without a dd"},
		{"value first", []core.Node{dd("Dansk"), dt("Sprog")}, "no preceding dt"},
		{"foreign element", []core.Node{dt("Sprog"), &fakeNode{tag: "div"}, dd("Dansk")}, "expected dt or dd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Extract(dl(tt.children...))
			var se *core.StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("expected StructuralError, got %v", err)
			}
			if !strings.Contains(se.Reason, tt.reason) {
				t.Errorf("reason %q does not mention %q", se.Reason, tt.reason)
			}
		})
	}
}

func TestExtract_HTML(t *testing.T) {
	doc, err := htmldoc.ParseString(`<dl id="info">
		<dt>Course code</dt> <dd> NDAB15009U </dd>
		<!-- comment -->
		<dt>Schedule</dt><dd><div>A</div><div>B</div></dd>
	</dl>`)
	if err != nil {
		t.Fatal(err)
	}
	list, ok := doc.FindByID("info")
	if !ok {
		t.Fatal("dl not found")
	}

	pairs, err := New().Extract(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []core.Pair{
		{Label: "Course code", Value: "NDAB15009U"},
		{Label: "Schedule", Value: "AB"},
	}
	if !slices.Equal(pairs, want) {
		t.Errorf("Extract() = %v, want %v", pairs, want)
	}
}
