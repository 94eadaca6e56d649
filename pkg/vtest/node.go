package vtest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// NodeKind discriminates concrete node types in the test tree.
type NodeKind uint8

const (
	HostNode     NodeKind = iota // The backend's root container
	ElementNode                  // Materialized element
	TextNode                     // Materialized text
	FragmentNode                 // Materialized fragment or stable host
)

// Node is a concrete retained node. Fields are exported for test
// assertions; mutation belongs to the backend.
type Node struct {
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]any
	Children []*Node

	parent *Node
	root   bool

	// desc is the description this node was last patched from.
	desc *vdom.VNode
}

// Parent returns the node's current parent, nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Markup serializes the subtree as HTML-ish markup. Fragments and hosts
// are transparent; attributes are sorted for deterministic output.
func (n *Node) Markup() string {
	var sb strings.Builder
	n.writeMarkup(&sb)
	return sb.String()
}

func (n *Node) writeMarkup(sb *strings.Builder) {
	switch n.Kind {
	case TextNode:
		sb.WriteString(n.Text)
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sb, " %s=%q", k, fmt.Sprint(n.Attrs[k]))
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			c.writeMarkup(sb)
		}
		sb.WriteString("</" + n.Tag + ">")
	default:
		for _, c := range n.Children {
			c.writeMarkup(sb)
		}
	}
}

// walk visits the subtree depth-first.
func (n *Node) walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.walk(visit)
	}
}

// FindByTag returns the first element with the given tag, or nil.
func (n *Node) FindByTag(tag string) *Node {
	var found *Node
	n.walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Kind == ElementNode && node.Tag == tag {
			found = node
			return false
		}
		return true
	})
	return found
}
