package components_test

import (
	"fmt"
	"testing"

	components "github.com/christianalfoni/superfine-reactive-components"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vtest"
)

// The counter from the package docs, driven end to end through the
// public facade.
func TestCounterThroughFacade(t *testing.T) {
	var state *components.Record

	counter := func(props *components.Record) any {
		state = components.Wrap(map[string]any{"count": 0})
		components.OnMount(func() {})
		return components.RenderFn(func() *components.VNode {
			return components.El("button", components.Attrs{"type": "button"},
				fmt.Sprint(state.Get("count")))
		})
	}

	b := vtest.NewBackend()
	rt, err := components.Attach(counter, b, b.Host())
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	defer rt.Detach()

	vtest.ExpectMarkup(t, b.Host(), `<button type="button">0</button>`)

	rt.Dispatch(func() { state.Set("count", 1) })
	rt.Settle()
	vtest.ExpectMarkup(t, b.Host(), `<button type="button">1</button>`)
}

func TestContextAndSuspenseThroughFacade(t *testing.T) {
	session := components.NewToken("session")
	f := components.NewFuture()

	profile := func(props *components.Record) any {
		user := components.Lookup(session)
		results := components.RegisterAsync(map[string]*components.Future{"bio": f})
		return components.RenderFn(func() *components.VNode {
			return components.El("article", nil,
				fmt.Sprintf("%v: %v", user.Get("name"), results.Get("bio")))
		})
	}
	app := func(props *components.Record) any {
		components.Publish(session, map[string]any{"name": "ada"})
		return components.RenderFn(func() *components.VNode {
			return components.Child(components.Boundary, map[string]any{
				"fallback": components.El("div", nil, "loading"),
				"content":  components.Child(profile, nil),
			})
		})
	}

	b := vtest.NewBackend()
	rt, err := components.Attach(app, b, b.Host())
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	defer rt.Detach()

	rt.Settle()
	vtest.ExpectMarkup(t, b.Host(), "<div>loading</div>")

	f.Resolve("writes compilers")
	rt.Settle()
	vtest.ExpectMarkup(t, b.Host(), "<article>ada: writes compilers</article>")
}
