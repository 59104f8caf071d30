// Package dom defines the presentation tree that binding nodes mutate.
//
// The binding layer never builds a tree itself. It instructs a Document,
// which may be a browser DOM, the in-memory tree in package memdom, or the
// patch-recording document used by live server sessions.
package dom

// Node is an opaque handle to a node owned by a Document.
// Handles are only meaningful to the Document that created them.
type Node interface{}

// Event names consumed by the binding layer.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventInput   = "input"
)

// KeyEnter is the Key of a keydown event for the Enter key.
const KeyEnter = "Enter"

// Event is delivered to listeners registered with AddEventListener.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Key is the key name for keyboard events.
	Key string

	// Value is the current value of the target's editable field for input events.
	Value string
}

// Handler receives events.
type Handler func(Event)

// Document creates and mutates presentation nodes.
type Document interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) Node

	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) Node

	// AppendChild moves child to the end of parent's children.
	AppendChild(parent, child Node)

	// InsertBefore moves child into parent before ref. A nil ref appends.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent. It does nothing if child
	// is not a child of parent.
	RemoveChild(parent, child Node)

	// ReplaceChild puts newChild where oldChild was and detaches oldChild.
	ReplaceChild(parent, oldChild, newChild Node)

	// ParentNode returns the parent of n, or nil if n is detached.
	ParentNode(n Node) Node

	// AddEventListener registers h for events of the given type on n.
	AddEventListener(n Node, event string, h Handler)

	// SetValue writes the editable value field of n.
	SetValue(n Node, value string)

	// Value reads the editable value field of n.
	Value(n Node) string
}
