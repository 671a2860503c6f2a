// Package objectify converts GSX response XML into a typed,
// name-addressable object graph.
//
// Leaf element text is coerced with the same tag-name-driven rules
// used when requests are encoded (see the field package): dates,
// timestamps, prices and Y/N booleans come back as native values, and
// attachment elements are materialized to temporary files whose paths
// replace the raw base64. Every leaf also keeps its exact original
// token, so callers that must re-submit a value verbatim can.
package objectify

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/servicetools/go-gsxws/pkg/field"
)

// Node is one element of the response graph. Child elements are
// reachable by tag name; repeated tags under one parent naturally
// form lists via All.
type Node struct {
	tag      string
	raw      string
	value    any
	children []*Node
}

// Parse locates every descendant element named tag in the document
// and converts each into a Node. Most operations yield exactly one
// match; collection-returning operations yield several. Attachment
// fields that fail to base64-decode abort the parse with a
// *field.DecodeError.
func Parse(data []byte, tag string) ([]*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("objectify: unparsable response: %w", err)
	}
	return convertAll(doc, tag)
}

// ParseFile is Parse reading the document from a file.
func ParseFile(path, tag string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("objectify: %w", err)
	}
	return Parse(data, tag)
}

// ParseOne is Parse for operations known to return a single object.
// It fails when the tag is missing or ambiguous.
func ParseOne(data []byte, tag string) (*Node, error) {
	nodes, err := Parse(data, tag)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("objectify: want one %s element, found %d", tag, len(nodes))
	}
	return nodes[0], nil
}

func convertAll(doc *etree.Document, tag string) ([]*Node, error) {
	els := doc.FindElements("//" + tag)
	if len(els) == 0 {
		return nil, fmt.Errorf("objectify: no %s element in response", tag)
	}

	nodes := make([]*Node, 0, len(els))
	for _, el := range els {
		n, err := fromElement(el)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func fromElement(el *etree.Element) (*Node, error) {
	n := &Node{tag: el.Tag}

	kids := el.ChildElements()
	if len(kids) == 0 {
		n.raw = strings.TrimSpace(el.Text())
		v, err := field.Decode(el.Tag, n.raw)
		if err != nil {
			return nil, err
		}
		n.value = v
		return n, nil
	}

	for _, kid := range kids {
		child, err := fromElement(kid)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

// Tag returns the node's element name.
func (n *Node) Tag() string { return n.tag }

// Leaf reports whether the node has no child elements.
func (n *Node) Leaf() bool { return len(n.children) == 0 }

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node { return n.children }

// Get returns the first child named tag, or nil when absent.
func (n *Node) Get(tag string) *Node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// Lookup returns the first child named tag and whether it exists.
func (n *Node) Lookup(tag string) (*Node, bool) {
	c := n.Get(tag)
	return c, c != nil
}

// All returns every child named tag. Repeated sibling elements of one
// name are the protocol's list encoding.
func (n *Node) All(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the exact original token of a leaf, before coercion.
func (n *Node) Text() string { return n.raw }

// Value returns the coerced native value of a leaf, or nil for
// non-leaf nodes.
func (n *Node) Value() any { return n.value }

// String returns the leaf's value when it decoded as a string; for
// coerced leaves it falls back to the raw token.
func (n *Node) String() string {
	if s, ok := n.value.(string); ok {
		return s
	}
	return n.raw
}

// Bool returns the leaf's value as a bool, when it decoded to one.
func (n *Node) Bool() (bool, bool) {
	b, ok := n.value.(bool)
	return b, ok
}

// Date returns the leaf's value as a Date, when it decoded to one.
func (n *Node) Date() (field.Date, bool) {
	d, ok := n.value.(field.Date)
	return d, ok
}

// Timestamp returns the leaf's value as a time.Time, when it decoded
// to one.
func (n *Node) Timestamp() (time.Time, bool) {
	t, ok := n.value.(time.Time)
	return t, ok
}

// Decimal returns the leaf's value as a decimal, when it decoded to
// one. Price fields decode to decimals with the currency prefix
// stripped.
func (n *Node) Decimal() (decimal.Decimal, bool) {
	d, ok := n.value.(decimal.Decimal)
	return d, ok
}

// GetString returns the string value of the named child, or "" when
// the child is absent.
func (n *Node) GetString(tag string) string {
	c := n.Get(tag)
	if c == nil {
		return ""
	}
	return c.String()
}
