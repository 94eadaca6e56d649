package vdom

// El creates an element node. Children may be *VNode or plain strings,
// which become text nodes.
func El(tag string, attrs Attrs, children ...any) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: coerce(children),
	}
}

// Text creates a text node.
func Text(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{Kind: KindFragment, Children: coerce(children)}
}

// Child embeds a component placeholder. Identity is positional among
// same-function siblings; use Keyed for explicit identity.
func Child(fn Component, props map[string]any) *VNode {
	return &VNode{Kind: KindComponent, Fn: fn, Props: props}
}

// Keyed embeds a component placeholder with an explicit identity key.
func Keyed(key string, fn Component, props map[string]any) *VNode {
	return &VNode{Kind: KindComponent, Fn: fn, Props: props, Key: key}
}

// WithKey returns the node with its reconciliation key set.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}

// coerce converts mixed children into nodes. Strings become text nodes,
// nils are dropped, everything else must already be a *VNode.
func coerce(children []any) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case string:
			out = append(out, Text(v))
		}
	}
	return out
}
