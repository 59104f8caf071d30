package memdom

import (
	"testing"

	"github.com/vango-dev/axon/pkg/dom"
)

func TestAppendAndRender(t *testing.T) {
	d := New()
	div := d.CreateElement("div")
	d.AppendChild(div, d.CreateTextNode("a < b"))
	in := d.CreateElement("input")
	d.SetValue(in, `say "hi"`)
	d.AppendChild(div, in)
	d.AppendChild(d.Body(), div)

	want := `<body><div>a &lt; b<input value="say &quot;hi&quot;"></div></body>`
	if got := RenderHTML(d.Body()); got != want {
		t.Errorf("RenderHTML() = %q, want %q", got, want)
	}
}

func TestInsertBeforeAndRemove(t *testing.T) {
	d := New()
	ul := d.CreateElement("ul")
	a := d.CreateTextNode("a")
	b := d.CreateTextNode("b")
	c := d.CreateTextNode("c")

	d.AppendChild(ul, a)
	d.AppendChild(ul, c)
	d.InsertBefore(ul, b, c)
	if got := TextContent(ul); got != "abc" {
		t.Fatalf("TextContent() = %q, want abc", got)
	}

	d.RemoveChild(ul, b)
	if got := TextContent(ul); got != "ac" {
		t.Errorf("TextContent() = %q, want ac", got)
	}
	if d.ParentNode(b) != nil {
		t.Error("removed node should be detached")
	}

	// Removing a non-child is a no-op.
	d.RemoveChild(ul, b)
	if got := TextContent(ul); got != "ac" {
		t.Errorf("TextContent() = %q, want ac", got)
	}
}

func TestAppendMovesNode(t *testing.T) {
	d := New()
	p1 := d.CreateElement("p")
	p2 := d.CreateElement("p")
	txt := d.CreateTextNode("x")

	d.AppendChild(p1, txt)
	d.AppendChild(p2, txt)

	if len(p1.(*Node).Children) != 0 {
		t.Error("node should have moved out of its old parent")
	}
	if d.ParentNode(txt) != p2 {
		t.Error("node should be attached to its new parent")
	}
}

func TestReplaceChild(t *testing.T) {
	d := New()
	p := d.CreateElement("p")
	oldText := d.CreateTextNode("old")
	newText := d.CreateTextNode("new")
	d.AppendChild(p, d.CreateTextNode("["))
	d.AppendChild(p, oldText)
	d.AppendChild(p, d.CreateTextNode("]"))

	d.ReplaceChild(p, oldText, newText)

	if got := TextContent(p); got != "[new]" {
		t.Errorf("TextContent() = %q, want [new]", got)
	}
	if d.ParentNode(oldText) != nil {
		t.Error("replaced node should be detached")
	}
	if d.ParentNode(newText) != p {
		t.Error("replacement should be attached")
	}
}

func TestDispatch(t *testing.T) {
	d := New()
	in := d.CreateElement("input")

	var got []dom.Event
	d.AddEventListener(in, dom.EventInput, func(ev dom.Event) { got = append(got, ev) })
	d.AddEventListener(in, dom.EventKeyDown, func(ev dom.Event) { got = append(got, ev) })

	d.Type(in, "hello")
	d.Press(in, dom.KeyEnter)
	d.Click(in)

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Value != "hello" || d.Value(in) != "hello" {
		t.Errorf("input event should carry and store the value, got %+v", got[0])
	}
	if got[1].Key != dom.KeyEnter {
		t.Errorf("expected Enter key, got %q", got[1].Key)
	}
	if d.ListenerCount(in, dom.EventClick) != 0 {
		t.Error("no click listener was registered")
	}
}

func TestLookup(t *testing.T) {
	d := New()
	n := d.CreateElement("span").(*Node)
	if _, ok := d.Lookup(n.ID); ok {
		t.Error("Lookup of a detached node should fail")
	}

	d.AppendChild(d.Body(), n)
	got, ok := d.Lookup(n.ID)
	if !ok || got != n {
		t.Errorf("Lookup(%d) failed", n.ID)
	}
	if _, ok := d.Lookup(9999); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestSubtreeIndexFollowsConnection(t *testing.T) {
	d := New()
	ul := d.CreateElement("ul")
	li := d.CreateElement("li")
	txt := d.CreateTextNode("x")
	d.AppendChild(li, txt)
	d.AppendChild(ul, li)

	if d.NodeCount() != 1 {
		t.Fatalf("NodeCount() = %d before attach, want 1", d.NodeCount())
	}

	d.AppendChild(d.Body(), ul)
	if d.NodeCount() != 4 {
		t.Fatalf("NodeCount() = %d after attach, want 4", d.NodeCount())
	}
	if !d.Connected(txt) {
		t.Error("descendant should be connected")
	}

	d.RemoveChild(ul, li)
	if d.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d after remove, want 2", d.NodeCount())
	}
	if d.Connected(txt) {
		t.Error("removed descendant should not be connected")
	}

	// Reinsertion indexes the subtree again.
	d.AppendChild(ul, li)
	if _, ok := d.Lookup(txt.(*Node).ID); !ok {
		t.Error("reinserted descendant should be found")
	}

	// Moving under a detached parent drops it.
	other := d.CreateElement("div")
	d.AppendChild(other, li)
	if d.Connected(li) || d.NodeCount() != 2 {
		t.Errorf("moved subtree should be dropped, NodeCount() = %d", d.NodeCount())
	}
}

func TestTextReplacementStaysBounded(t *testing.T) {
	d := New()
	p := d.CreateElement("p")
	d.AppendChild(d.Body(), p)
	cur := d.CreateTextNode("0")
	d.AppendChild(p, cur)

	for i := 0; i < 1000; i++ {
		next := d.CreateTextNode("n")
		d.ReplaceChild(p, cur, next)
		cur = next
	}
	if d.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d after 1000 replacements, want 3", d.NodeCount())
	}
}

func TestForeignHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for foreign handle")
		}
	}()
	New().AppendChild("not a node", "nor this")
}

func TestIsVoidElement(t *testing.T) {
	for _, tag := range []string{"input", "br", "img"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"div", "span", "button"} {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true, want false", tag)
		}
	}
}
