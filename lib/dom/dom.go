// Package dom provides read and write helpers over golang.org/x/net/html
// trees: attribute access, selector resolution, parsing and rendering.
//
// All readers tolerate nil and non-element nodes by returning the zero or
// default value, so callers can walk arbitrary trees without guarding.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned when a selector cannot be compiled.
var ErrInvalidSelector = errors.New("dom: invalid selector")

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return doc, nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses markup in the context of the given element, as if it
// were that element's inner HTML.
func ParseFragment(r io.Reader, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// Render writes n and its descendants as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// String renders n to a string. Render errors yield an empty string.
func String(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// QueryAll returns every element under root matching selector, in document
// order.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	if root == nil {
		return nil, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return sel.MatchAll(root), nil
}

// IsElement reports whether n is a non-nil element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsTag reports whether n is an element with the given tag name.
// The comparison is case-insensitive.
func IsTag(n *html.Node, tag string) bool {
	return IsElement(n) && strings.EqualFold(n.Data, tag)
}

// Attr returns the value of the named attribute, or def when n is nil, is
// not an element, or lacks the attribute.
func Attr(n *html.Node, name, def string) string {
	if !IsElement(n) {
		return def
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return def
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, name string) bool {
	if !IsElement(n) {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing an existing value.
func SetAttr(n *html.Node, name, value string) {
	if !IsElement(n) {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// Children returns the direct element children of n in document order.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// ReplaceChildren detaches every child of n and appends nodes in order.
// The nodes must not already have a parent.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}
