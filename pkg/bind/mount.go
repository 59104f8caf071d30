package bind

import "github.com/vango-dev/axon/pkg/dom"

// Root is a producer mounted into a container node.
type Root struct {
	doc       dom.Document
	container dom.Node
	producer  NodeProducer
	node      dom.Node
}

// Mount materializes producer and appends it to container. Call it once the
// host document is ready.
func Mount(doc dom.Document, container dom.Node, producer NodeProducer) *Root {
	n := producer.Materialize(doc)
	doc.AppendChild(container, n)
	getLogger().Debug("mounted root", "type", rootType(producer))
	return &Root{doc: doc, container: container, producer: producer, node: n}
}

// Node returns the current root node.
func (r *Root) Node() dom.Node {
	return r.producer.Materialize(r.doc)
}

// Unmount disconnects the whole tree and removes it from the container.
// Calling it more than once has no further effect.
func (r *Root) Unmount() {
	if r.node == nil {
		return
	}
	r.producer.Disconnect()
	r.doc.RemoveChild(r.container, r.producer.Materialize(r.doc))
	r.node = nil
}

func rootType(p NodeProducer) string {
	if e, ok := p.(*ElementNode); ok {
		return e.Tag()
	}
	return "text"
}
