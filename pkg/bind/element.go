package bind

import (
	"fmt"

	"github.com/vango-dev/axon/pkg/dom"
)

// ElementNode is a lazily materialized element and its instructions.
type ElementNode struct {
	tag          string
	instructions []Instruction

	// node is nil until Materialize runs.
	node dom.Node
}

// Element describes an element with the given tag. Nil instructions are
// skipped, which allows conditional children.
func Element(tag string, instructions ...Instruction) *ElementNode {
	kept := make([]Instruction, 0, len(instructions))
	for _, in := range instructions {
		if in != nil {
			kept = append(kept, in)
		}
	}
	return &ElementNode{tag: tag, instructions: kept}
}

// Materialize creates the element, appends node-producing children and
// attaches behaviors, in instruction order. Later calls return the cached node.
func (e *ElementNode) Materialize(doc dom.Document) dom.Node {
	if e.node != nil {
		return e.node
	}

	e.node = doc.CreateElement(e.tag)
	for _, in := range e.instructions {
		switch v := in.(type) {
		case NodeProducer:
			doc.AppendChild(e.node, v.Materialize(doc))
		case Behavior:
			v.Attach(doc, e.node)
		default:
			getLogger().Warn("ignoring instruction that neither produces a node nor attaches",
				"tag", e.tag,
				"type", fmt.Sprintf("%T", in))
		}
	}
	return e.node
}

// Node returns the materialized element, or nil before Materialize.
func (e *ElementNode) Node() dom.Node {
	return e.node
}

// Tag returns the element's tag name.
func (e *ElementNode) Tag() string {
	return e.tag
}

// Disconnect disconnects every instruction, recursively.
func (e *ElementNode) Disconnect() {
	for _, in := range e.instructions {
		in.Disconnect()
	}
}

// A creates an <a> element.
func A(instructions ...Instruction) *ElementNode {
	return Element("a", instructions...)
}

// Div creates a <div> element.
func Div(instructions ...Instruction) *ElementNode {
	return Element("div", instructions...)
}

// Span creates a <span> element.
func Span(instructions ...Instruction) *ElementNode {
	return Element("span", instructions...)
}

// P creates a <p> element.
func P(instructions ...Instruction) *ElementNode {
	return Element("p", instructions...)
}

// H1 creates an <h1> element.
func H1(instructions ...Instruction) *ElementNode {
	return Element("h1", instructions...)
}

// H2 creates an <h2> element.
func H2(instructions ...Instruction) *ElementNode {
	return Element("h2", instructions...)
}

// H3 creates an <h3> element.
func H3(instructions ...Instruction) *ElementNode {
	return Element("h3", instructions...)
}

// Form creates a <form> element.
func Form(instructions ...Instruction) *ElementNode {
	return Element("form", instructions...)
}

// Input creates an <input> element.
func Input(instructions ...Instruction) *ElementNode {
	return Element("input", instructions...)
}

// Button creates a <button> element.
func Button(instructions ...Instruction) *ElementNode {
	return Element("button", instructions...)
}

// Ul creates a <ul> element.
func Ul(instructions ...Instruction) *ElementNode {
	return Element("ul", instructions...)
}

// Li creates an <li> element.
func Li(instructions ...Instruction) *ElementNode {
	return Element("li", instructions...)
}

// Label creates a <label> element.
func Label(instructions ...Instruction) *ElementNode {
	return Element("label", instructions...)
}
