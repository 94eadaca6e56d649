package runtime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vtest"
)

func TestLookupFindsAncestorAtDepth(t *testing.T) {
	theme := NewToken("theme")

	leaf := func(props *reactive.Record) any {
		view := Lookup(theme)
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("span", nil, fmt.Sprint(view.Get("color")))
		})
	}
	mid := func(props *reactive.Record) any {
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("div", nil, vdom.Child(leaf, nil))
		})
	}
	app := func(props *reactive.Record) any {
		Publish(theme, map[string]any{"color": "teal"})
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.Child(mid, nil)
		})
	}
	_, b := attachTest(t, app)
	vtest.ExpectMarkup(t, b.Host(), "<div><span>teal</span></div>")
}

// The view reads through to the published record: a later write is
// visible and re-renders readers.
func TestLookupIsReadThrough(t *testing.T) {
	token := NewToken("session")
	state := reactive.Wrap(map[string]any{"user": "ada"})

	leaf := func(props *reactive.Record) any {
		view := Lookup(token)
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("b", nil, fmt.Sprint(view.Get("user")))
		})
	}
	app := func(props *reactive.Record) any {
		Publish(token, state)
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.Child(leaf, nil)
		})
	}
	rt, b := attachTest(t, app)
	vtest.ExpectMarkup(t, b.Host(), "<b>ada</b>")

	rt.Dispatch(func() { state.Set("user", "grace") })
	rt.Settle()
	vtest.ExpectMarkup(t, b.Host(), "<b>grace</b>")
}

// The nearest publisher wins, and within one publisher the first record
// holding a key wins.
func TestLookupPrecedence(t *testing.T) {
	token := NewToken("cfg")

	leaf := func(props *reactive.Record) any {
		view := Lookup(token)
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("span", nil,
				fmt.Sprintf("%v/%v", view.Get("a"), view.Get("b")))
		})
	}
	inner := func(props *reactive.Record) any {
		Publish(token,
			map[string]any{"a": "first"},
			map[string]any{"a": "second", "b": "only"})
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.Child(leaf, nil)
		})
	}
	app := func(props *reactive.Record) any {
		Publish(token, map[string]any{"a": "outer", "b": "outer"})
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.Child(inner, nil)
		})
	}
	_, b := attachTest(t, app)
	vtest.ExpectMarkup(t, b.Host(), "<span>first/only</span>")
}

func TestDoublePublishPanics(t *testing.T) {
	token := NewToken("dup")
	app := func(props *reactive.Record) any {
		Publish(token, map[string]any{})
		Publish(token, map[string]any{})
		return vdom.RenderFn(func() *vdom.VNode { return nil })
	}
	expectAttachPanic(t, app, ErrDoublePublish)
}

func TestLookupUnpublishedPanics(t *testing.T) {
	token := NewToken("missing")
	app := func(props *reactive.Record) any {
		Lookup(token)
		return vdom.RenderFn(func() *vdom.VNode { return nil })
	}
	expectAttachPanic(t, app, ErrTokenNotPublished)
}

// expectAttachPanic attaches fn and asserts setup panicked with the
// given sentinel. The panic crosses Attach's RunSync on the loop
// goroutine, so it is observed via recover inside a wrapper component.
func expectAttachPanic(t *testing.T, fn vdom.Component, sentinel error) {
	t.Helper()
	var recovered any
	wrapper := func(props *reactive.Record) any {
		func() {
			defer func() { recovered = recover() }()
			fn(props)
		}()
		return vdom.RenderFn(func() *vdom.VNode { return nil })
	}
	b := vtest.NewBackend()
	rt, err := Attach(wrapper, b, b.Host())
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	defer rt.Detach()

	rerr, ok := recovered.(error)
	if !ok || !errors.Is(rerr, sentinel) {
		t.Fatalf("recovered %v, want %v", recovered, sentinel)
	}
}
