// Package markup describes HTML fragments as plain values so that they can be built and compared without a
// browser or a parsed document.
package markup

import (
	"bytes"
	"github.com/myrjola/constellation/internal/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"io"
	"slices"
	"strings"
)

// Attr is a single attribute. Boolean attributes have an empty value.
type Attr struct {
	Key string
	Val string
}

// Node is either an element (Tag set) or a text node (Tag empty).
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El creates an element with children.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// TextEl creates an element holding a single text node.
func TextEl(tag, text string) *Node {
	return El(tag, Text(text))
}

// Set sets attribute key to val, replacing a previous value.
func (n *Node) Set(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// SetIf sets attribute key to val when cond holds.
func (n *Node) SetIf(cond bool, key, val string) *Node {
	if cond {
		return n.Set(key, val)
	}
	return n
}

// Flag sets a boolean attribute such as hidden or disabled when cond holds.
func (n *Node) Flag(key string, cond bool) *Node {
	return n.SetIf(cond, key, "")
}

// Class appends class names to the class attribute.
func (n *Node) Class(names ...string) *Node {
	existing, _ := n.Get("class")
	classes := strings.Fields(existing)
	for _, name := range names {
		if name != "" && !slices.Contains(classes, name) {
			classes = append(classes, name)
		}
	}
	return n.Set("class", strings.Join(classes, " "))
}

// Get returns the value of attribute key.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Has reports whether the attribute key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// TextContent concatenates all text below n.
func (n *Node) TextContent() string {
	if n.Tag == "" {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// HTML converts the node into an [html.Node] tree ready to be inserted into a parsed document.
func (n *Node) HTML() *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		out.AppendChild(c.HTML())
	}
	return out
}

// Render writes the nodes as HTML to w.
func Render(w io.Writer, nodes ...*Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n.HTML()); err != nil {
			return errors.Wrap(err, "render html")
		}
	}
	return nil
}

// String renders the nodes as HTML.
func String(nodes ...*Node) string {
	var buf bytes.Buffer
	// Rendering to a bytes.Buffer only fails on malformed trees, which Node cannot express.
	_ = Render(&buf, nodes...)
	return buf.String()
}
