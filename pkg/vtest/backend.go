package vtest

import (
	"errors"
	"fmt"

	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

// ErrUnresolvedComponent is returned when a component placeholder reaches
// the backend. Placeholders are resolved into stable hosts by the runtime
// before patching.
var ErrUnresolvedComponent = errors.New("vtest: unresolved component placeholder in description")

// Backend is an in-memory vdom.Backend with real connectivity semantics.
type Backend struct {
	host *Node

	// stable maps stable host descriptions to their concrete nodes, so
	// attachment and reordering happen by identity without re-diffing.
	stable map[*vdom.VNode]*Node
}

var _ vdom.Backend = (*Backend)(nil)

// NewBackend creates a backend with an empty connected host.
func NewBackend() *Backend {
	return &Backend{
		host:   &Node{Kind: HostNode, root: true},
		stable: make(map[*vdom.VNode]*Node),
	}
}

// Host returns the backend's root container node.
func (b *Backend) Host() *Node {
	return b.host
}

// CreateOrUpdate implements vdom.Backend.
func (b *Backend) CreateOrUpdate(anchor vdom.Node, desc *vdom.VNode) (vdom.Node, error) {
	if desc == nil {
		return nil, errors.New("vtest: nil description")
	}

	if anchor == nil {
		if desc.Stable {
			if cached, ok := b.stable[desc]; ok {
				return cached, nil
			}
		}
		return b.materialize(desc)
	}

	an, ok := anchor.(*Node)
	if !ok {
		return nil, fmt.Errorf("vtest: foreign anchor %T", anchor)
	}

	// In-place update of a node previously created for this description.
	if an.desc == desc || (desc.Stable && b.stable[desc] == an) {
		if err := b.patchNode(an, desc); err != nil {
			return nil, err
		}
		return an, nil
	}

	// Container mode: append. A stable description already materialized
	// in detached mode moves in as the same node.
	var n *Node
	if desc.Stable {
		n = b.stable[desc]
	}
	if n == nil {
		var err error
		n, err = b.materialize(desc)
		if err != nil {
			return nil, err
		}
	}
	n.parent = an
	an.Children = append(an.Children, n)
	return n, nil
}

// IsConnected implements vdom.Backend: reachable from the host root.
func (b *Backend) IsConnected(node vdom.Node) bool {
	n, ok := node.(*Node)
	if !ok {
		return false
	}
	for n != nil {
		if n.root {
			return true
		}
		n = n.parent
	}
	return false
}

// materialize builds a fresh detached node tree for desc.
func (b *Backend) materialize(desc *vdom.VNode) (*Node, error) {
	switch desc.Kind {
	case vdom.KindText:
		return &Node{Kind: TextNode, Text: desc.Text, desc: desc}, nil

	case vdom.KindElement:
		n := &Node{Kind: ElementNode, Tag: desc.Tag, Attrs: copyAttrs(desc.Attrs), desc: desc}
		if err := b.materializeChildren(n, desc.Children); err != nil {
			return nil, err
		}
		return n, nil

	case vdom.KindFragment:
		n := &Node{Kind: FragmentNode, desc: desc}
		if desc.Stable {
			b.stable[desc] = n
		}
		if err := b.materializeChildren(n, desc.Children); err != nil {
			return nil, err
		}
		return n, nil

	default:
		return nil, ErrUnresolvedComponent
	}
}

func (b *Backend) materializeChildren(parent *Node, descs []*vdom.VNode) error {
	for _, d := range descs {
		var child *Node
		if d.Stable {
			if cached, ok := b.stable[d]; ok {
				child = cached
			}
		}
		if child == nil {
			var err error
			child, err = b.materialize(d)
			if err != nil {
				return err
			}
		}
		child.parent = parent
		parent.Children = append(parent.Children, child)
	}
	return nil
}

// patchNode updates n in place from desc. Kind and tag are assumed
// compatible; reconcileChildren guarantees that for internal calls, and
// anchors are fragments whose kind never changes.
func (b *Backend) patchNode(n *Node, desc *vdom.VNode) error {
	n.desc = desc
	switch desc.Kind {
	case vdom.KindText:
		n.Text = desc.Text
		return nil
	case vdom.KindElement:
		n.Attrs = copyAttrs(desc.Attrs)
		return b.reconcileChildren(n, desc.Children)
	case vdom.KindFragment:
		return b.reconcileChildren(n, desc.Children)
	default:
		return ErrUnresolvedComponent
	}
}

// reconcileChildren updates parent's child list to match descs. Stable
// hosts and unchanged description references are attached or moved by
// identity and never diffed; keyed children match by key; the rest match
// positionally.
func (b *Backend) reconcileChildren(parent *Node, descs []*vdom.VNode) error {
	old := parent.Children

	keyed := make(map[string]*Node)
	for _, c := range old {
		if c.desc != nil && c.desc.Key != "" {
			keyed[c.desc.Key] = c
		}
	}

	used := make(map[*Node]bool)
	out := make([]*Node, 0, len(descs))
	oldIdx := 0

	nextPositional := func() *Node {
		for oldIdx < len(old) {
			c := old[oldIdx]
			if used[c] || (c.desc != nil && c.desc.Key != "") {
				oldIdx++
				continue
			}
			return c
		}
		return nil
	}

	for _, d := range descs {
		var match *Node
		switch {
		case d.Stable:
			match = b.stable[d]
		case d.Key != "":
			match = keyed[d.Key]
		default:
			match = nextPositional()
		}

		switch {
		case match == nil:
			n, err := b.materialize(d)
			if err != nil {
				return err
			}
			out = append(out, n)

		case d.Stable || match.desc == d:
			// Identity: attach or move without diffing.
			used[match] = true
			out = append(out, match)

		case compatible(match, d):
			used[match] = true
			if err := b.patchNode(match, d); err != nil {
				return err
			}
			out = append(out, match)

		default:
			// Incompatible node at this position: discard and rebuild.
			used[match] = true
			n, err := b.materialize(d)
			if err != nil {
				return err
			}
			out = append(out, n)
		}
	}

	inOut := make(map[*Node]bool, len(out))
	for _, n := range out {
		inOut[n] = true
	}
	for _, c := range old {
		if !inOut[c] && c.parent == parent {
			c.parent = nil
		}
	}
	for _, n := range out {
		n.parent = parent
	}
	parent.Children = out
	return nil
}

func compatible(n *Node, d *vdom.VNode) bool {
	switch d.Kind {
	case vdom.KindText:
		return n.Kind == TextNode
	case vdom.KindElement:
		return n.Kind == ElementNode && n.Tag == d.Tag
	case vdom.KindFragment:
		return n.Kind == FragmentNode
	default:
		return false
	}
}

func copyAttrs(attrs vdom.Attrs) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
