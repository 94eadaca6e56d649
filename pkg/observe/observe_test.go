package observe

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/runtime"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vtest"
)

func TestMetricsCountRendersAndInstances(t *testing.T) {
	registry := prometheus.NewRegistry()
	instr := New(WithRegistry(registry), WithNamespace("test"))

	var state *reactive.Record
	app := func(props *reactive.Record) any {
		state = reactive.Wrap(map[string]any{"n": 0})
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("p", nil, fmt.Sprint(state.Get("n")))
		})
	}
	b := vtest.NewBackend()
	rt, err := runtime.Attach(app, b, b.Host(), runtime.WithInstrumentation(instr))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	rt.Dispatch(func() { state.Set("n", 1) })
	rt.Settle()

	if got := testutil.ToFloat64(instr.m.instancesLive); got != 1 {
		t.Errorf("instances_live = %v, want 1", got)
	}
	renders := testutil.ToFloat64(instr.m.rendersTotal)
	if renders != 2 {
		t.Errorf("renders_total = %v, want 2", renders)
	}

	if err := rt.Detach(); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if got := testutil.ToFloat64(instr.m.instancesLive); got != 0 {
		t.Errorf("instances_live after detach = %v, want 0", got)
	}
}

func TestRegistryExposesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	instr := New(WithRegistry(registry), WithNamespace("expose"))
	instr.StormDetected()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "expose_render_storms_total" {
			found = true
		}
	}
	if !found {
		t.Error("render_storms_total not exposed")
	}
}
