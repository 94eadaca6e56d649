package vtest

import (
	"testing"

	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
)

func TestBackendMaterialize(t *testing.T) {
	b := NewBackend()

	desc := vdom.El("div", vdom.Attrs{"class": "card"},
		vdom.El("h1", nil, "Title"),
		"plain",
	)
	node, err := b.CreateOrUpdate(b.Host(), desc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ExpectMarkup(t, b.Host(), `<div class="card"><h1>Title</h1>plain</div>`)
	if !b.IsConnected(node) {
		t.Error("node appended to host should be connected")
	}
}

func TestBackendDetachedThenAttached(t *testing.T) {
	b := NewBackend()

	desc := vdom.El("span", nil, "x")
	node, err := b.CreateOrUpdate(nil, desc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.IsConnected(node) {
		t.Error("detached node should not be connected")
	}
}

func TestBackendInPlaceUpdate(t *testing.T) {
	b := NewBackend()

	host := &vdom.VNode{Kind: vdom.KindFragment, Stable: true}
	host.Children = []*vdom.VNode{vdom.El("div", nil, "0")}

	node, err := b.CreateOrUpdate(b.Host(), host)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ExpectMarkup(t, b.Host(), `<div>0</div>`)

	// Mutate the host contents and patch the same anchor.
	host.Children = []*vdom.VNode{vdom.El("div", nil, "1")}
	updated, err := b.CreateOrUpdate(node, host)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != node {
		t.Error("in-place update must keep the same concrete node")
	}
	ExpectMarkup(t, b.Host(), `<div>1</div>`)
}

func TestBackendStableHostSkipsDiff(t *testing.T) {
	b := NewBackend()

	stable := &vdom.VNode{
		Kind:     vdom.KindFragment,
		Stable:   true,
		Children: []*vdom.VNode{vdom.El("p", nil, "child")},
	}
	outer := &vdom.VNode{Kind: vdom.KindFragment, Stable: true}
	outer.Children = []*vdom.VNode{vdom.El("div", nil, stable)}

	anchor, err := b.CreateOrUpdate(b.Host(), outer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stableNode, _ := b.CreateOrUpdate(nil, stable)

	// Re-patch the outer host with the same embedded stable reference but
	// stale child contents: the subtree must not be re-diffed.
	stable.Children = nil // would empty the subtree if diffed
	outer.Children = []*vdom.VNode{vdom.El("div", nil, stable)}
	if _, err := b.CreateOrUpdate(anchor, outer); err != nil {
		t.Fatalf("update: %v", err)
	}
	ExpectMarkup(t, b.Host(), `<div><p>child</p></div>`)

	same, _ := b.CreateOrUpdate(nil, stable)
	if same != stableNode {
		t.Error("stable description must map to the same concrete node")
	}
}

func TestBackendKeyedReorderMovesNodes(t *testing.T) {
	b := NewBackend()

	a := &vdom.VNode{Kind: vdom.KindFragment, Stable: true, Key: "a",
		Children: []*vdom.VNode{vdom.Text("A")}}
	c := &vdom.VNode{Kind: vdom.KindFragment, Stable: true, Key: "c",
		Children: []*vdom.VNode{vdom.Text("C")}}

	outer := &vdom.VNode{Kind: vdom.KindFragment, Stable: true}
	outer.Children = []*vdom.VNode{a, c}
	anchor, err := b.CreateOrUpdate(b.Host(), outer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	aNode, _ := b.CreateOrUpdate(nil, a)
	ExpectMarkup(t, b.Host(), "AC")

	outer.Children = []*vdom.VNode{c, a}
	if _, err := b.CreateOrUpdate(anchor, outer); err != nil {
		t.Fatalf("update: %v", err)
	}
	ExpectMarkup(t, b.Host(), "CA")

	moved, _ := b.CreateOrUpdate(nil, a)
	if moved != aNode {
		t.Error("reordering must move nodes, not recreate them")
	}
}

func TestBackendRemovalDisconnects(t *testing.T) {
	b := NewBackend()

	inner := &vdom.VNode{Kind: vdom.KindFragment, Stable: true,
		Children: []*vdom.VNode{vdom.Text("x")}}
	outer := &vdom.VNode{Kind: vdom.KindFragment, Stable: true}
	outer.Children = []*vdom.VNode{inner}

	anchor, err := b.CreateOrUpdate(b.Host(), outer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	innerNode, _ := b.CreateOrUpdate(nil, inner)
	if !b.IsConnected(innerNode) {
		t.Fatal("inner node should start connected")
	}

	outer.Children = nil
	if _, err := b.CreateOrUpdate(anchor, outer); err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.IsConnected(innerNode) {
		t.Error("removed subtree must report disconnected")
	}
}

func TestBackendRejectsPlaceholders(t *testing.T) {
	b := NewBackend()
	// Component placeholders must be resolved by the runtime first.
	if _, err := b.CreateOrUpdate(b.Host(), &vdom.VNode{Kind: vdom.KindComponent}); err == nil {
		t.Error("expected error for unresolved component placeholder")
	}
}
