package server

import (
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/dom/memdom"
	"github.com/vango-dev/axon/pkg/protocol"
	"github.com/vango-dev/axon/pkg/reactive"
)

// clientTree applies patches the way the browser client does, so tests can
// compare the client's view with the server mirror.
type clientTree struct {
	doc     *memdom.Document
	nodes   map[uint64]dom.Node
	listens map[string][]uint64
	values  map[uint64]string
}

func newClientTree() *clientTree {
	d := memdom.New()
	return &clientTree{
		doc:     d,
		nodes:   map[uint64]dom.Node{0: d.Body()},
		listens: make(map[string][]uint64),
		values:  make(map[uint64]string),
	}
}

func (c *clientTree) node(t *testing.T, id uint64) dom.Node {
	t.Helper()
	n, ok := c.nodes[id]
	if !ok {
		t.Fatalf("patch references unknown node %d", id)
	}
	return n
}

func (c *clientTree) apply(t *testing.T, patches []protocol.Patch) {
	t.Helper()
	for _, p := range patches {
		switch p.Op {
		case protocol.PatchCreateElement:
			c.nodes[p.ID] = c.doc.CreateElement(p.Tag)
		case protocol.PatchCreateText:
			c.nodes[p.ID] = c.doc.CreateTextNode(p.Text)
		case protocol.PatchInsert:
			var ref dom.Node
			if p.Ref != 0 {
				ref = c.node(t, p.Ref)
			}
			c.doc.InsertBefore(c.node(t, p.Parent), c.node(t, p.ID), ref)
		case protocol.PatchRemove:
			n := c.node(t, p.ID)
			c.doc.RemoveChild(c.node(t, p.Parent), n)
			c.forget(n)
		case protocol.PatchReplace:
			old := c.node(t, p.Old)
			c.doc.ReplaceChild(c.node(t, p.Parent), old, c.node(t, p.ID))
			c.forget(old)
		case protocol.PatchListen:
			c.listens[p.Event] = append(c.listens[p.Event], p.ID)
		case protocol.PatchSetValue:
			c.doc.SetValue(c.node(t, p.ID), p.Text)
			c.values[p.ID] = p.Text
		default:
			t.Fatalf("unexpected patch op %s", p.Op)
		}
	}
}

// forget drops n and its descendants from the id table.
func (c *clientTree) forget(n dom.Node) {
	for id, known := range c.nodes {
		if known == n {
			delete(c.nodes, id)
		}
	}
	mn, _ := memdom.AsNode(n)
	for _, child := range mn.Children {
		c.forget(child)
	}
}

func (c *clientTree) html() string {
	var b strings.Builder
	for _, n := range c.doc.Body().Children {
		b.WriteString(memdom.RenderHTML(n))
	}
	return b.String()
}

// listener returns the only node listening for event.
func (c *clientTree) listener(t *testing.T, event string) uint64 {
	t.Helper()
	ids := c.listens[event]
	if len(ids) != 1 {
		t.Fatalf("expected one %s listener, got %v", event, ids)
	}
	return ids[0]
}

// counterApp renders a count and a button that increments it.
func counterApp() bind.NodeProducer {
	count := reactive.New(0)
	return bind.Div(
		bind.Span(bind.Text("count: ", reactive.Map[int, string](count, strconv.Itoa))),
		bind.Button(bind.Text("+"), bind.OnClick(func() {
			count.Update(func(n int) int { return n + 1 })
		})),
	)
}
