package demo

import (
	"slices"
	"testing"

	"github.com/vango-dev/axon/pkg/axontest"
	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/dom/memdom"
)

func mountTodo(t *testing.T, items ...string) (*Todo, *memdom.Document, *memdom.Node) {
	t.Helper()
	todo := NewTodo(items...)
	doc := memdom.New()
	root := bind.Mount(doc, doc.Body(), todo.View())
	t.Cleanup(root.Unmount)
	div, _ := memdom.AsNode(root.Node())
	return todo, doc, div
}

// child returns the i-th child of the todo's root div.
func child(t *testing.T, div *memdom.Node, i int) *memdom.Node {
	t.Helper()
	if i >= len(div.Children) {
		t.Fatalf("root has %d children, want > %d", len(div.Children), i)
	}
	return div.Children[i]
}

func TestTodoInitialRender(t *testing.T) {
	_, _, div := mountTodo(t, "milk", "eggs")

	want := `<div><h1>Todo</h1><input><p>Adding: </p><ul><li>milk</li><li>eggs</li></ul>` +
		`<p>2 items</p><button>Remove last</button><button>Clear</button></div>`
	if got := memdom.RenderHTML(div); got != want {
		t.Errorf("RenderHTML =\n%s\nwant\n%s", got, want)
	}
}

func TestTodoTypeAndEnter(t *testing.T) {
	todo, doc, div := mountTodo(t)
	input := child(t, div, 1)

	doc.Type(input, "  bread ")
	if got := memdom.TextContent(child(t, div, 2)); got != "Adding:   bread " {
		t.Errorf("preview = %q", got)
	}

	doc.Press(input, dom.KeyEnter)
	if got := todo.Items.Items(); !slices.Equal(got, []string{"bread"}) {
		t.Errorf("items = %v", got)
	}
	if input.Value != "" {
		t.Errorf("input should be cleared, got %q", input.Value)
	}
	if got := memdom.TextContent(child(t, div, 4)); got != "1 item" {
		t.Errorf("count = %q", got)
	}
	if got := memdom.RenderHTML(child(t, div, 3)); got != "<ul><li>bread</li></ul>" {
		t.Errorf("list = %q", got)
	}
}

func TestTodoIgnoresBlankDraft(t *testing.T) {
	todo, doc, div := mountTodo(t)
	input := child(t, div, 1)

	doc.Type(input, "   ")
	doc.Press(input, dom.KeyEnter)
	doc.Press(input, "a")

	if todo.Items.Len() != 0 {
		t.Errorf("blank drafts should not be added, got %v", todo.Items.Items())
	}
}

func TestTodoButtons(t *testing.T) {
	todo, doc, div := mountTodo(t, "a", "b", "c")
	removeLast, clear := child(t, div, 5), child(t, div, 6)

	doc.Click(removeLast)
	if got := memdom.RenderHTML(child(t, div, 3)); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("after remove last: %q", got)
	}

	doc.Click(clear)
	if got := memdom.RenderHTML(child(t, div, 3)); got != "<ul></ul>" {
		t.Errorf("after clear: %q", got)
	}
	if todo.Count.Get() != 0 {
		t.Errorf("count = %d", todo.Count.Get())
	}
	if got := memdom.TextContent(child(t, div, 4)); got != "0 items" {
		t.Errorf("label = %q", got)
	}

	doc.Click(removeLast)
	if todo.Items.Len() != 0 {
		t.Error("removing from an empty list should be a no-op")
	}
}

func TestCounter(t *testing.T) {
	v := axontest.Mount(t, NewCounter().View())
	buttons := v.FindAll("button")
	minus, plus := buttons[0], buttons[1]

	v.Click(plus)
	v.Click(plus)
	v.Click(minus)
	v.ExpectContains("<span>1</span>")

	v.Click(minus)
	v.Click(minus)
	v.ExpectContains("<span>-1</span>")
}

func TestLookup(t *testing.T) {
	if got := Names(); !slices.Equal(got, []string{"counter", "todo"}) {
		t.Errorf("Names() = %v", got)
	}
	for _, name := range Names() {
		app, ok := Lookup(name)
		if !ok || app() == nil {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if _, ok := Lookup("chat"); ok {
		t.Error("unknown demo should not be found")
	}
}
