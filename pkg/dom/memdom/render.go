package memdom

import (
	"strings"

	"github.com/vango-dev/axon/pkg/dom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// RenderHTML serializes n and its descendants. An element's editable value
// is emitted as its value attribute.
func RenderHTML(n dom.Node) string {
	var b strings.Builder
	renderNode(&b, node(n))
	return b.String()
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n dom.Node) string {
	var b strings.Builder
	collectText(&b, node(n))
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	if n.Kind == KindText {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	if n.Value != "" {
		b.WriteString(` value="`)
		b.WriteString(escapeAttr(n.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if IsVoidElement(n.Tag) {
		return
	}
	for _, c := range n.Children {
		renderNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func collectText(b *strings.Builder, n *Node) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		collectText(b, c)
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in attribute values,
// including whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}

	return buf.String()
}
