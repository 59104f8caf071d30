package axontest

import (
	"strings"
	"testing"

	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/dom/memdom"
)

// View is a mounted view under test.
type View struct {
	tb   testing.TB
	Doc  *memdom.Document
	Root *bind.Root
}

// Mount mounts p into a fresh document. The view is unmounted when the
// test ends.
func Mount(tb testing.TB, p bind.NodeProducer) *View {
	tb.Helper()
	doc := memdom.New()
	root := bind.Mount(doc, doc.Body(), p)
	tb.Cleanup(root.Unmount)
	return &View{tb: tb, Doc: doc, Root: root}
}

// RenderToString mounts p, renders it and unmounts it again.
//
// Example:
//
//	html := axontest.RenderToString(bind.P(bind.Text("hi")))
//	// <p>hi</p>
func RenderToString(p bind.NodeProducer) string {
	doc := memdom.New()
	root := bind.Mount(doc, doc.Body(), p)
	defer root.Unmount()
	return memdom.RenderHTML(root.Node())
}

// HTML renders the mounted view.
func (v *View) HTML() string {
	return memdom.RenderHTML(v.Root.Node())
}

// Text returns the text content of the mounted view.
func (v *View) Text() string {
	return memdom.TextContent(v.Root.Node())
}

// FindAll returns the elements with the given tag in document order.
func (v *View) FindAll(tag string) []*memdom.Node {
	var out []*memdom.Node
	var walk func(n *memdom.Node)
	walk = func(n *memdom.Node) {
		if n.Kind == memdom.KindElement && n.Tag == tag {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(v.Doc.Body())
	return out
}

// Find returns the first element with the given tag and fails the test
// if there is none.
func (v *View) Find(tag string) *memdom.Node {
	v.tb.Helper()
	all := v.FindAll(tag)
	if len(all) == 0 {
		v.tb.Fatalf("no <%s> element in:\n%s", tag, truncate(v.HTML(), 500))
	}
	return all[0]
}

// Click simulates a click on n.
func (v *View) Click(n dom.Node) {
	v.Doc.Click(n)
}

// Type simulates typing value into n.
func (v *View) Type(n dom.Node, value string) {
	v.Doc.Type(n, value)
}

// Press simulates a key press on n.
func (v *View) Press(n dom.Node, key string) {
	v.Doc.Press(n, key)
}

// ExpectContains asserts that the rendered view contains expected.
func (v *View) ExpectContains(expected string) {
	v.tb.Helper()
	html := v.HTML()
	if !strings.Contains(html, expected) {
		v.tb.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered view does not contain
// unexpected.
func (v *View) ExpectNotContains(unexpected string) {
	v.tb.Helper()
	html := v.HTML()
	if strings.Contains(html, unexpected) {
		v.tb.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectCount asserts how many elements with tag the view holds.
func (v *View) ExpectCount(tag string, want int) {
	v.tb.Helper()
	if got := len(v.FindAll(tag)); got != want {
		v.tb.Errorf("expected %d <%s> elements, got %d in:\n%s", want, tag, got, truncate(v.HTML(), 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
