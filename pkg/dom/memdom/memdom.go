// Package memdom implements dom.Document as a plain in-memory tree.
//
// It backs the binding layer in tests and the CLI, and serves as the mirror
// of a remote browser tree in live server sessions.
package memdom

import (
	"fmt"
	"slices"

	"github.com/vango-dev/axon/pkg/dom"
)

// Kind discriminates element and text nodes.
type Kind uint8

const (
	KindElement Kind = iota
	KindText
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an element or text node.
type Node struct {
	ID       uint64
	Kind     Kind
	Tag      string
	Text     string
	Value    string
	Parent   *Node
	Children []*Node

	listeners map[string][]dom.Handler
}

// Document is an in-memory presentation tree. Only nodes connected to the
// body are indexed by id; a subtree is dropped from the index when it
// leaves the tree and indexed again if it is reinserted.
// It is not safe for concurrent use.
type Document struct {
	nextID uint64
	nodes  map[uint64]*Node
	body   *Node
}

// New creates a document with an empty body element.
func New() *Document {
	d := &Document{nodes: make(map[uint64]*Node)}
	d.body = d.newNode(KindElement, "body", "")
	d.nodes[d.body.ID] = d.body
	return d
}

func (d *Document) newNode(kind Kind, tag, text string) *Node {
	d.nextID++
	return &Node{ID: d.nextID, Kind: kind, Tag: tag, Text: text}
}

// Body returns the root container.
func (d *Document) Body() *Node {
	return d.body
}

// Lookup returns the connected node with the given id.
func (d *Document) Lookup(id uint64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Node {
	return d.newNode(KindElement, tag, "")
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return d.newNode(KindText, "", text)
}

// AppendChild implements dom.Document.
func (d *Document) AppendChild(parent, child dom.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements dom.Document.
func (d *Document) InsertBefore(parent, child, ref dom.Node) {
	p, c := node(parent), node(child)
	if p.Kind != KindElement {
		panic(fmt.Sprintf("memdom: cannot insert into %s node %d", p.Kind, p.ID))
	}
	detach(c)

	i := len(p.Children)
	if ref != nil {
		if r := node(ref); r.Parent == p {
			i = p.indexOf(r)
		}
	}
	p.Children = slices.Insert(p.Children, i, c)
	c.Parent = p
	d.sync(p, c)
}

// RemoveChild implements dom.Document.
func (d *Document) RemoveChild(parent, child dom.Node) {
	p, c := node(parent), node(child)
	if c.Parent != p {
		return
	}
	detach(c)
	d.release(c)
}

// ReplaceChild implements dom.Document.
func (d *Document) ReplaceChild(parent, oldChild, newChild dom.Node) {
	p, o, n := node(parent), node(oldChild), node(newChild)
	if o.Parent != p || o == n {
		return
	}
	detach(n)
	i := p.indexOf(o)
	p.Children[i] = n
	n.Parent = p
	o.Parent = nil
	d.release(o)
	d.sync(p, n)
}

// Connected reports whether n is attached, directly or not, to the body.
func (d *Document) Connected(n dom.Node) bool {
	nn := node(n)
	got, ok := d.nodes[nn.ID]
	return ok && got == nn
}

// NodeCount returns the number of indexed nodes, the body included.
func (d *Document) NodeCount() int {
	return len(d.nodes)
}

// sync indexes or drops c and its descendants to match p's connection.
func (d *Document) sync(p, c *Node) {
	if _, ok := d.nodes[p.ID]; ok {
		d.adopt(c)
	} else {
		d.release(c)
	}
}

func (d *Document) adopt(n *Node) {
	if _, ok := d.nodes[n.ID]; ok {
		return
	}
	d.nodes[n.ID] = n
	for _, c := range n.Children {
		d.adopt(c)
	}
}

func (d *Document) release(n *Node) {
	if _, ok := d.nodes[n.ID]; !ok {
		return
	}
	delete(d.nodes, n.ID)
	for _, c := range n.Children {
		d.release(c)
	}
}

// ParentNode implements dom.Document.
func (d *Document) ParentNode(n dom.Node) dom.Node {
	p := node(n).Parent
	if p == nil {
		return nil
	}
	return p
}

// AddEventListener implements dom.Document.
func (d *Document) AddEventListener(n dom.Node, event string, h dom.Handler) {
	nn := node(n)
	if nn.listeners == nil {
		nn.listeners = make(map[string][]dom.Handler)
	}
	nn.listeners[event] = append(nn.listeners[event], h)
}

// SetValue implements dom.Document.
func (d *Document) SetValue(n dom.Node, value string) {
	node(n).Value = value
}

// Value implements dom.Document.
func (d *Document) Value(n dom.Node) string {
	return node(n).Value
}

// Dispatch delivers ev to the listeners registered on n for ev.Type,
// in registration order. Input events first store ev.Value in n, as a
// browser does before firing them.
func (d *Document) Dispatch(n dom.Node, ev dom.Event) {
	nn := node(n)
	if ev.Type == dom.EventInput {
		nn.Value = ev.Value
	}
	for _, h := range slices.Clone(nn.listeners[ev.Type]) {
		h(ev)
	}
}

// Type simulates a user typing value into n.
func (d *Document) Type(n dom.Node, value string) {
	d.Dispatch(n, dom.Event{Type: dom.EventInput, Value: value})
}

// Click simulates a click on n.
func (d *Document) Click(n dom.Node) {
	d.Dispatch(n, dom.Event{Type: dom.EventClick})
}

// Press simulates a keydown of key on n.
func (d *Document) Press(n dom.Node, key string) {
	d.Dispatch(n, dom.Event{Type: dom.EventKeyDown, Key: key})
}

// ListenerCount returns how many listeners n has for event.
func (d *Document) ListenerCount(n dom.Node, event string) int {
	return len(node(n).listeners[event])
}

// indexOf returns the position of c among n's children, or -1.
func (n *Node) indexOf(c *Node) int {
	return slices.Index(n.Children, c)
}

// detach removes n from its parent, if any.
func detach(n *Node) {
	p := n.Parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	n.Parent = nil
}

// node unwraps a handle created by a memdom Document.
func node(n dom.Node) *Node {
	nn, ok := n.(*Node)
	if !ok || nn == nil {
		panic(fmt.Sprintf("memdom: foreign node handle %T", n))
	}
	return nn
}

// AsNode unwraps a handle created by a memdom Document.
func AsNode(n dom.Node) (*Node, bool) {
	nn, ok := n.(*Node)
	return nn, ok && nn != nil
}
