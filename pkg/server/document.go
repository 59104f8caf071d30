package server

import (
	"fmt"
	"strings"

	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/dom/memdom"
	"github.com/vango-dev/axon/pkg/protocol"
)

// RemoteDocument is a dom.Document that mirrors a browser tree.
//
// Mutations are applied to an in-memory tree and queued as patches for the
// client. The mount container is addressed as node 0 on the wire.
// Removed and replaced subtrees are released on both sides and must not be
// inserted again. It is not safe for concurrent use.
type RemoteDocument struct {
	doc       *memdom.Document
	pending   []protocol.Patch
	listening map[listenKey]struct{}
}

type listenKey struct {
	id    uint64
	event string
}

// NewRemoteDocument creates an empty document.
func NewRemoteDocument() *RemoteDocument {
	return &RemoteDocument{
		doc:       memdom.New(),
		listening: make(map[listenKey]struct{}),
	}
}

// Container returns the node views are mounted into.
func (d *RemoteDocument) Container() dom.Node {
	return d.doc.Body()
}

// Mirror returns the underlying in-memory tree.
func (d *RemoteDocument) Mirror() *memdom.Document {
	return d.doc
}

// Pending returns the number of patches waiting to be flushed.
func (d *RemoteDocument) Pending() int {
	return len(d.pending)
}

// Flush returns the queued patches and clears the queue.
func (d *RemoteDocument) Flush() []protocol.Patch {
	p := d.pending
	d.pending = nil
	return p
}

// CreateElement implements dom.Document.
func (d *RemoteDocument) CreateElement(tag string) dom.Node {
	n := d.doc.CreateElement(tag)
	d.record(protocol.Patch{Op: protocol.PatchCreateElement, ID: d.wireID(n), Tag: tag})
	return n
}

// CreateTextNode implements dom.Document.
func (d *RemoteDocument) CreateTextNode(text string) dom.Node {
	n := d.doc.CreateTextNode(text)
	d.record(protocol.Patch{Op: protocol.PatchCreateText, ID: d.wireID(n), Text: text})
	return n
}

// AppendChild implements dom.Document.
func (d *RemoteDocument) AppendChild(parent, child dom.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements dom.Document.
func (d *RemoteDocument) InsertBefore(parent, child, ref dom.Node) {
	var refID uint64
	if ref != nil && d.doc.ParentNode(ref) == parent {
		refID = d.wireID(ref)
	}
	d.doc.InsertBefore(parent, child, ref)
	d.record(protocol.Patch{
		Op:     protocol.PatchInsert,
		Parent: d.wireID(parent),
		ID:     d.wireID(child),
		Ref:    refID,
	})
}

// RemoveChild implements dom.Document.
func (d *RemoteDocument) RemoveChild(parent, child dom.Node) {
	if d.doc.ParentNode(child) != parent {
		return
	}
	d.doc.RemoveChild(parent, child)
	d.record(protocol.Patch{Op: protocol.PatchRemove, Parent: d.wireID(parent), ID: d.wireID(child)})
}

// ReplaceChild implements dom.Document.
func (d *RemoteDocument) ReplaceChild(parent, oldChild, newChild dom.Node) {
	if d.doc.ParentNode(oldChild) != parent || oldChild == newChild {
		return
	}
	d.doc.ReplaceChild(parent, oldChild, newChild)
	d.record(protocol.Patch{
		Op:     protocol.PatchReplace,
		Parent: d.wireID(parent),
		Old:    d.wireID(oldChild),
		ID:     d.wireID(newChild),
	})
}

// ParentNode implements dom.Document.
func (d *RemoteDocument) ParentNode(n dom.Node) dom.Node {
	return d.doc.ParentNode(n)
}

// AddEventListener implements dom.Document. The client is asked to forward
// each (node, event) pair once, whatever the number of local listeners.
func (d *RemoteDocument) AddEventListener(n dom.Node, event string, h dom.Handler) {
	d.doc.AddEventListener(n, event, h)
	key := listenKey{id: d.wireID(n), event: event}
	if _, ok := d.listening[key]; ok {
		return
	}
	d.listening[key] = struct{}{}
	d.record(protocol.Patch{Op: protocol.PatchListen, ID: key.id, Event: event})
}

// SetValue implements dom.Document. Setting the value a node already holds
// sends nothing, which keeps input events from echoing back.
func (d *RemoteDocument) SetValue(n dom.Node, value string) {
	if d.doc.Value(n) == value {
		return
	}
	d.doc.SetValue(n, value)
	d.record(protocol.Patch{Op: protocol.PatchSetValue, ID: d.wireID(n), Text: value})
}

// Value implements dom.Document.
func (d *RemoteDocument) Value(n dom.Node) string {
	return d.doc.Value(n)
}

// Dispatch delivers a client event to the listeners of its node.
func (d *RemoteDocument) Dispatch(ev *protocol.Event) error {
	n, ok := d.lookup(ev.ID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, ev.ID)
	}
	d.doc.Dispatch(n, dom.Event{Type: ev.Type, Key: ev.Key, Value: ev.Value})
	return nil
}

// HTML renders the mirrored tree inside the container.
func (d *RemoteDocument) HTML() string {
	var b strings.Builder
	for _, c := range d.doc.Body().Children {
		b.WriteString(memdom.RenderHTML(c))
	}
	return b.String()
}

func (d *RemoteDocument) record(p protocol.Patch) {
	d.pending = append(d.pending, p)
}

// wireID maps a node to its protocol id.
func (d *RemoteDocument) wireID(n dom.Node) uint64 {
	nn, ok := memdom.AsNode(n)
	if !ok {
		panic(fmt.Sprintf("server: foreign node handle %T", n))
	}
	if nn == d.doc.Body() {
		return 0
	}
	return nn.ID
}

// lookup maps a protocol id to a node.
func (d *RemoteDocument) lookup(id uint64) (*memdom.Node, bool) {
	if id == 0 {
		return d.doc.Body(), true
	}
	n, ok := d.doc.Lookup(id)
	if !ok || n == d.doc.Body() {
		return nil, false
	}
	return n, true
}
