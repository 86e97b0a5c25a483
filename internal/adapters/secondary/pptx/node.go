package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type nodeKind int

const (
	documentNode nodeKind = iota
	elementNode
	textNode
	procInstNode
	commentNode
	directiveNode
)

// node is a lossless XML tree node. Names keep the prefix exactly as written
// ("a:rPr"), so serializing a parsed part reproduces its namespace layout.
type node struct {
	kind     nodeKind
	name     string
	attrs    []xml.Attr
	children []*node
	data     string
}

// escape writes s as character data. Carriage returns are written as references
// so they survive end-of-line normalization; runes XML cannot carry become U+FFFD.
// Inside attributes quotes, tabs and newlines are escaped as well.
func escape(buf *bytes.Buffer, s string, attr bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch {
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '\r':
			buf.WriteString("&#xD;")
		case attr && r == '"':
			buf.WriteString("&quot;")
		case attr && r == '\t':
			buf.WriteString("&#x9;")
		case attr && r == '\n':
			buf.WriteString("&#xA;")
		case (r == utf8.RuneError && size == 1) || !isXMLChar(r):
			buf.WriteRune('\uFFFD')
		default:
			buf.WriteRune(r)
		}
	}
}

// isXMLChar reports whether r is in the XML 1.0 Char production
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func splitQualified(name string) xml.Name {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return xml.Name{Space: name[:i], Local: name[i+1:]}
	}
	return xml.Name{Local: name}
}

// parseNodes builds a document node from raw XML
func parseNodes(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &node{kind: documentNode}
	stack := []*node{doc}

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			el := &node{kind: elementNode, name: qualified(t.Name)}
			el.attrs = append(el.attrs, t.Attr...)
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 1 || parent.name != qualified(t.Name) {
				return nil, fmt.Errorf("parsing xml: unexpected </%s>", qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			parent.children = append(parent.children, &node{kind: textNode, data: string(t)})
		case xml.ProcInst:
			parent.children = append(parent.children, &node{kind: procInstNode, name: t.Target, data: string(t.Inst)})
		case xml.Comment:
			parent.children = append(parent.children, &node{kind: commentNode, data: string(t)})
		case xml.Directive:
			parent.children = append(parent.children, &node{kind: directiveNode, data: string(t)})
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("parsing xml: unclosed <%s>", stack[len(stack)-1].name)
	}
	if doc.root() == nil {
		return nil, errors.New("parsing xml: no root element")
	}
	return doc, nil
}

// bytes serializes the node and its descendants
func (n *node) bytes() []byte {
	var buf bytes.Buffer
	n.write(&buf)
	return buf.Bytes()
}

func (n *node) write(buf *bytes.Buffer) {
	switch n.kind {
	case documentNode:
		for _, c := range n.children {
			c.write(buf)
		}
	case elementNode:
		buf.WriteByte('<')
		buf.WriteString(n.name)
		for _, a := range n.attrs {
			buf.WriteByte(' ')
			buf.WriteString(qualified(a.Name))
			buf.WriteString(`="`)
			escape(buf, a.Value, true)
			buf.WriteByte('"')
		}
		if len(n.children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, c := range n.children {
			c.write(buf)
		}
		buf.WriteString("</")
		buf.WriteString(n.name)
		buf.WriteByte('>')
	case textNode:
		escape(buf, n.data, false)
	case procInstNode:
		buf.WriteString("<?")
		buf.WriteString(n.name)
		if n.data != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.data)
		}
		buf.WriteString("?>")
	case commentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.data)
		buf.WriteString("-->")
	case directiveNode:
		buf.WriteString("<!")
		buf.WriteString(n.data)
		buf.WriteByte('>')
	}
}

// root returns the document element
func (n *node) root() *node {
	for _, c := range n.children {
		if c.kind == elementNode {
			return c
		}
	}
	return nil
}

func (n *node) local() string {
	return splitQualified(n.name).Local
}

// elements returns the element children
func (n *node) elements() []*node {
	var out []*node
	for _, c := range n.children {
		if c.kind == elementNode {
			out = append(out, c)
		}
	}
	return out
}

// child returns the first element child with the qualified name
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.kind == elementNode && c.name == name {
			return c
		}
	}
	return nil
}

// childrenNamed returns every element child with the qualified name
func (n *node) childrenNamed(name string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.kind == elementNode && c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if qualified(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) setAttr(name, value string) {
	for i, a := range n.attrs {
		if qualified(a.Name) == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: splitQualified(name), Value: value})
}

func (n *node) appendChild(c *node) {
	n.children = append(n.children, c)
}

// insertBefore inserts c before ref, or appends when ref is not a child
func (n *node) insertBefore(c, ref *node) {
	for i, existing := range n.children {
		if existing == ref {
			n.children = append(n.children, nil)
			copy(n.children[i+1:], n.children[i:])
			n.children[i] = c
			return
		}
	}
	n.appendChild(c)
}

func (n *node) prependChild(c *node) {
	n.children = append([]*node{c}, n.children...)
}

func (n *node) removeChild(c *node) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// firstChildIn returns the first element child whose local name is in names
func (n *node) firstChildIn(names map[string]bool) *node {
	for _, c := range n.children {
		if c.kind == elementNode && names[c.local()] {
			return c
		}
	}
	return nil
}

// text returns the concatenated character data below n
func (n *node) text() string {
	if n.kind == textNode {
		return n.data
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.text())
	}
	return sb.String()
}

func newElement(name string, attrs ...string) *node {
	el := &node{kind: elementNode, name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.setAttr(attrs[i], attrs[i+1])
	}
	return el
}

func newText(s string) *node {
	return &node{kind: textNode, data: s}
}

func nameSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
