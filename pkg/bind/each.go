package bind

import (
	"slices"

	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/reactive"
)

// ListBinding renders one child per list item into its parent element and
// applies list patches by splicing child nodes. Items are not diffed: a
// patch removes exactly the reported range and materializes the inserted
// items in its place.
type ListBinding[T any] struct {
	list   reactive.ObservableList[T]
	render func(T) NodeProducer

	doc      dom.Document
	parent   dom.Node
	anchor   dom.Node
	children []NodeProducer
}

// Each renders list into the containing element using render for each item.
// Siblings placed after Each keep their position: rendered items are kept
// in front of an empty marker text node.
func Each[T any](list reactive.ObservableList[T], render func(T) NodeProducer) *ListBinding[T] {
	return &ListBinding[T]{list: list, render: render}
}

// Attach materializes the current items and subscribes to the list.
func (l *ListBinding[T]) Attach(doc dom.Document, parent dom.Node) {
	if l.parent != nil {
		return
	}
	l.doc = doc
	l.parent = parent
	l.anchor = doc.CreateTextNode("")
	doc.AppendChild(parent, l.anchor)

	l.insert(0, l.list.Len())
	l.list.AddObserver(l)
}

// UpdateRange disconnects and removes the deleted children, then
// materializes the inserted items at start.
func (l *ListBinding[T]) UpdateRange(start, deleteCount, insertedCount int) {
	if l.parent == nil {
		return
	}
	start = min(max(start, 0), len(l.children))
	end := min(start+max(deleteCount, 0), len(l.children))

	for _, c := range l.children[start:end] {
		c.Disconnect()
		l.doc.RemoveChild(l.parent, c.Materialize(l.doc))
	}
	l.children = slices.Delete(l.children, start, end)

	l.insert(start, insertedCount)
}

// insert materializes list items [start, start+count) before the child
// currently at start.
func (l *ListBinding[T]) insert(start, count int) {
	ref := l.anchor
	if start < len(l.children) {
		ref = l.children[start].Materialize(l.doc)
	}

	added := make([]NodeProducer, 0, count)
	for i := start; i < start+count && i < l.list.Len(); i++ {
		child := l.render(l.list.Get(i))
		l.doc.InsertBefore(l.parent, child.Materialize(l.doc), ref)
		added = append(added, child)
	}
	l.children = slices.Insert(l.children, start, added...)
}

// Len returns the number of rendered children.
func (l *ListBinding[T]) Len() int {
	return len(l.children)
}

// Disconnect deregisters from the list and disconnects every child.
func (l *ListBinding[T]) Disconnect() {
	l.list.DeleteObserver(l)
	for _, c := range l.children {
		c.Disconnect()
	}
}
