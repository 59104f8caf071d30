package bind

import (
	"testing"

	"github.com/vango-dev/axon/pkg/dom/memdom"
	"github.com/vango-dev/axon/pkg/reactive"
)

func renderItem(s string) NodeProducer {
	return Li(Text(s))
}

func TestEachInitialRender(t *testing.T) {
	list := reactive.NewList("a", "b")
	ul := Ul(Each[string](list, renderItem))
	mount(t, ul)

	if got := memdom.RenderHTML(ul.Node()); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("unexpected render %q", got)
	}
}

func TestEachAppliesPatches(t *testing.T) {
	list := reactive.NewList("a", "b", "c", "d")
	each := Each[string](list, renderItem)
	ul := Ul(each)
	mount(t, ul)

	tests := []struct {
		name string
		op   func()
		want string
	}{
		{"splice", func() { list.Splice(1, 2, "x", "y", "z") }, "axyzd"},
		{"push", func() { list.Push("e") }, "axyzde"},
		{"unshift", func() { list.Unshift("0") }, "0axyzde"},
		{"pop", func() { list.Pop() }, "0axyzd"},
		{"shift", func() { list.Shift() }, "axyzd"},
		{"clear", func() { list.Splice(0, list.Len()) }, ""},
		{"refill", func() { list.Push("p", "q") }, "pq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.op()
			if got := memdom.TextContent(ul.Node()); got != tt.want {
				t.Errorf("TextContent() = %q, want %q", got, tt.want)
			}
			if each.Len() != list.Len() {
				t.Errorf("rendered %d children for %d items", each.Len(), list.Len())
			}
		})
	}
}

func TestEachKeepsTrailingSiblings(t *testing.T) {
	list := reactive.NewList("a")
	ul := Ul(Li(Text("head")), Each[string](list, renderItem), Li(Text("tail")))
	mount(t, ul)

	list.Push("b")
	list.Unshift("0")

	if got := memdom.TextContent(ul.Node()); got != "head0abtail" {
		t.Errorf("TextContent() = %q, want head0abtail", got)
	}
}

func TestEachDisconnectsRemovedChildren(t *testing.T) {
	label := reactive.New("!")
	list := reactive.NewList("a", "b")
	ul := Ul(Each[string](list, func(s string) NodeProducer {
		return Li(Text(s, label))
	}))
	mount(t, ul)

	if label.ObserverCount() != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", label.ObserverCount())
	}

	list.Shift()
	if label.ObserverCount() != 1 {
		t.Errorf("removed child should be disconnected, got %d subscriptions", label.ObserverCount())
	}

	label.Set("?")
	if got := memdom.TextContent(ul.Node()); got != "b?" {
		t.Errorf("TextContent() = %q, want b?", got)
	}
}

func TestEachChildTextReplacementKeepsPosition(t *testing.T) {
	suffix := reactive.New("1")
	list := reactive.NewList("a", "b")
	ul := Ul(Each[string](list, func(s string) NodeProducer {
		return Text(s, suffix)
	}))
	mount(t, ul)

	// Bare text children replace their node on update; later splices must
	// still find the current node.
	suffix.Set("2")
	list.Splice(1, 0, "m")
	list.Shift()

	if got := memdom.TextContent(ul.Node()); got != "m2b2" {
		t.Errorf("TextContent() = %q, want m2b2", got)
	}
}

func TestEachDisconnect(t *testing.T) {
	label := reactive.New("x")
	list := reactive.NewList("a")
	each := Each[string](list, func(s string) NodeProducer { return Text(s, label) })
	ul := Ul(each)
	mount(t, ul)

	each.Disconnect()
	each.Disconnect()

	if list.ObserverCount() != 0 {
		t.Errorf("expected list observers 0, got %d", list.ObserverCount())
	}
	if label.ObserverCount() != 0 {
		t.Errorf("expected label observers 0, got %d", label.ObserverCount())
	}

	list.Push("b")
	if got := memdom.TextContent(ul.Node()); got != "ax" {
		t.Errorf("disconnected list should not render, got %q", got)
	}
}

func TestEachConstantList(t *testing.T) {
	list := reactive.NewConstantList("x", "y")
	ul := Ul(Each[string](list, renderItem))
	mount(t, ul)

	if got := memdom.TextContent(ul.Node()); got != "xy" {
		t.Errorf("TextContent() = %q, want xy", got)
	}
}
