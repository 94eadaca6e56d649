package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/christianalfoni/superfine-reactive-components/internal/config"
	"github.com/christianalfoni/superfine-reactive-components/pkg/devtools"
	"github.com/christianalfoni/superfine-reactive-components/pkg/observe"
	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
	"github.com/christianalfoni/superfine-reactive-components/pkg/runtime"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vdom"
	"github.com/christianalfoni/superfine-reactive-components/pkg/vtest"
)

// renderCounter counts render passes on top of the full observability
// stack, so the benchmark exercises the same instrumentation path a
// production runtime carries.
type renderCounter struct {
	inner   runtime.Instrumentation
	renders atomic.Int64
}

func (c *renderCounter) InstanceCreated(component string)   { c.inner.InstanceCreated(component) }
func (c *renderCounter) InstanceDestroyed(component string) { c.inner.InstanceDestroyed(component) }
func (c *renderCounter) RenderStart(component string) func(error) {
	c.renders.Add(1)
	return c.inner.RenderStart(component)
}
func (c *renderCounter) FlushStart() func()                   { return c.inner.FlushStart() }
func (c *renderCounter) StormDetected()                       { c.inner.StormDetected() }
func (c *renderCounter) AsyncRejected(name string, err error) { c.inner.AsyncRejected(name, err) }

func benchCmd() *cobra.Command {
	var (
		configPath string
		rows       int
		updates    int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the runtime against a synthetic component tree",
		Long: `Attach a keyed list of components to the in-memory backend, drive
update rounds through the runtime loop, and report render throughput.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rows") {
				cfg.Bench.Rows = rows
			}
			if cmd.Flags().Changed("updates") {
				cfg.Bench.Updates = updates
			}
			return runBench(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to superfine.yaml")
	cmd.Flags().IntVar(&rows, "rows", 100, "Synthetic list size")
	cmd.Flags().IntVar(&updates, "updates", 1000, "Update rounds to drive")

	return cmd
}

func runBench(cfg config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	instr := &renderCounter{inner: observe.New(
		observe.WithNamespace(cfg.Metrics.Namespace),
		observe.WithRegistry(prometheus.NewRegistry()),
	)}

	rowStates := make([]*reactive.Record, cfg.Bench.Rows)

	row := func(props *reactive.Record) any {
		return vdom.RenderFn(func() *vdom.VNode {
			return vdom.El("li", nil, fmt.Sprint(props.Get("value")))
		})
	}
	list := func(props *reactive.Record) any {
		for i := range rowStates {
			rowStates[i] = reactive.Wrap(map[string]any{"value": 0})
		}
		return vdom.RenderFn(func() *vdom.VNode {
			children := make([]any, len(rowStates))
			for i := range rowStates {
				children[i] = vdom.Keyed(fmt.Sprintf("row-%d", i), row,
					map[string]any{"value": rowStates[i].Get("value")})
			}
			return vdom.El("ul", nil, children...)
		})
	}

	backend := vtest.NewBackend()
	rt, err := runtime.Attach(list, backend, backend.Host(),
		runtime.WithLogger(logger),
		runtime.WithInstrumentation(instr))
	if err != nil {
		return err
	}
	defer rt.Detach()

	if cfg.Devtools.Enabled {
		srv := devtools.NewServer(rt)
		port, err := srv.Start(cfg.Devtools.Port)
		if err != nil {
			return err
		}
		logger.Info("devtools inspector", "port", port)
	}

	start := time.Now()
	for round := 1; round <= cfg.Bench.Updates; round++ {
		v := round
		target := rowStates[round%len(rowStates)]
		rt.Dispatch(func() { target.Set("value", v) })
		rt.Settle()
	}
	elapsed := time.Since(start)

	renders := instr.renders.Load()
	fmt.Printf("rows:        %d\n", cfg.Bench.Rows)
	fmt.Printf("updates:     %d\n", cfg.Bench.Updates)
	fmt.Printf("renders:     %d\n", renders)
	fmt.Printf("elapsed:     %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("renders/sec: %.0f\n", float64(renders)/elapsed.Seconds())
	return nil
}
