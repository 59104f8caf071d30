package bind

import (
	"fmt"
	"strings"

	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/reactive"
)

// TextNode renders the concatenation of its fragments as one text node.
// Every change to a fragment replaces the text node with a new one.
type TextNode struct {
	fragments []reactive.Observable[string]

	doc  dom.Document
	node dom.Node
}

// Text describes a text node. Fragments may be strings, observables of any
// value type from package reactive (kept live and formatted with
// fmt.Sprint), fmt.Stringers, or anything else, which is formatted once.
// Other observable implementations must provide Observable[string]; Text
// panics on them.
func Text(fragments ...any) *TextNode {
	t := &TextNode{fragments: make([]reactive.Observable[string], len(fragments))}
	for i, f := range fragments {
		t.fragments[i] = fragment(f)
	}
	return t
}

func fragment(v any) reactive.Observable[string] {
	switch f := v.(type) {
	case reactive.Observable[string]:
		return f
	case reactive.Untyped:
		return reactive.Format(f)
	case reactive.Subscribable:
		panic(fmt.Sprintf("bind: unsupported observable %T in text, use reactive.Observable[string]", f))
	case string:
		return reactive.NewConstant(f)
	case fmt.Stringer:
		return reactive.NewConstant(f.String())
	default:
		return reactive.NewConstant(fmt.Sprint(f))
	}
}

// Materialize creates the text node and subscribes to every fragment that
// can change. Later calls return the current node.
func (t *TextNode) Materialize(doc dom.Document) dom.Node {
	if t.node != nil {
		return t.node
	}

	t.doc = doc
	t.node = doc.CreateTextNode(t.content())
	for _, f := range t.fragments {
		if !reactive.IsConstant(f) {
			f.AddObserver(t)
		}
	}
	return t.node
}

// Update re-renders the text into a fresh node and swaps it into the
// parent in place of the old one.
func (t *TextNode) Update() {
	if t.node == nil {
		return
	}

	next := t.doc.CreateTextNode(t.content())
	if parent := t.doc.ParentNode(t.node); parent != nil {
		t.doc.ReplaceChild(parent, t.node, next)
	}
	t.node = next
}

// Disconnect deregisters from every fragment.
func (t *TextNode) Disconnect() {
	for _, f := range t.fragments {
		f.DeleteObserver(t)
	}
}

// Node returns the current text node, or nil before Materialize.
func (t *TextNode) Node() dom.Node {
	return t.node
}

func (t *TextNode) content() string {
	var b strings.Builder
	for _, f := range t.fragments {
		b.WriteString(f.Get())
	}
	return b.String()
}
