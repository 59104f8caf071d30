package bind

import (
	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/reactive"
)

// ListenerBehavior attaches an event listener to its parent element.
// Listeners stay attached for the life of the node; Disconnect stops
// delivery to the callback.
type ListenerBehavior struct {
	event        string
	handler      dom.Handler
	disconnected bool
}

// On attaches handler for events of the given type.
func On(event string, handler dom.Handler) *ListenerBehavior {
	return &ListenerBehavior{event: event, handler: handler}
}

// OnClick calls fn on every activation of the element.
func OnClick(fn func()) *ListenerBehavior {
	return On(dom.EventClick, func(dom.Event) { fn() })
}

// OnEnter calls fn when the Enter key is pressed on the element.
func OnEnter(fn func()) *ListenerBehavior {
	return On(dom.EventKeyDown, func(ev dom.Event) {
		if ev.Key == dom.KeyEnter {
			fn()
		}
	})
}

// Attach registers the listener on parent.
func (b *ListenerBehavior) Attach(doc dom.Document, parent dom.Node) {
	doc.AddEventListener(parent, b.event, func(ev dom.Event) {
		if b.disconnected {
			return
		}
		b.handler(ev)
	})
}

// Disconnect stops the callback from running.
func (b *ListenerBehavior) Disconnect() {
	b.disconnected = true
}

// Settable is an observable that can be written.
type Settable[T any] interface {
	reactive.Observable[T]
	Set(T)
}

// ValueBinding keeps an editable element's value and an observable in sync
// in both directions.
type ValueBinding struct {
	value Settable[string]

	doc          dom.Document
	element      dom.Node
	disconnected bool
}

// BindValue binds the value field of the containing element to value.
// Typing into the element writes value; writing value updates the element.
// The equality gate on value stops a typed edit from echoing back.
func BindValue(value Settable[string]) *ValueBinding {
	return &ValueBinding{value: value}
}

// Attach pushes the current value into the element, subscribes to value
// and listens for input events.
func (b *ValueBinding) Attach(doc dom.Document, parent dom.Node) {
	b.doc = doc
	b.element = parent
	b.Update()
	b.value.AddObserver(b)

	doc.AddEventListener(parent, dom.EventInput, func(ev dom.Event) {
		if b.disconnected {
			return
		}
		b.value.Set(ev.Value)
	})
}

// Update writes the observable's current value into the element.
func (b *ValueBinding) Update() {
	if b.element == nil {
		return
	}
	b.doc.SetValue(b.element, b.value.Get())
}

// Disconnect deregisters from the observable and ignores further input.
func (b *ValueBinding) Disconnect() {
	b.disconnected = true
	b.value.DeleteObserver(b)
}
