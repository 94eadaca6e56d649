// Package devtools serves a live inspector for an attached runtime:
// the instance tree as JSON, Prometheus metrics, and a websocket stream
// of tree snapshots.
package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/christianalfoni/superfine-reactive-components/pkg/runtime"
)

// SnapshotInterval is how often the websocket stream pushes the tree.
const SnapshotInterval = 250 * time.Millisecond

// Server exposes one runtime for inspection.
type Server struct {
	rt *runtime.Runtime

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener

	upgrader websocket.Upgrader
}

// NewServer creates an inspector for rt.
func NewServer(rt *runtime.Runtime) *Server {
	return &Server{
		rt: rt,
		upgrader: websocket.Upgrader{
			// Local tooling; the inspector is not meant to face the internet.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start binds the inspector on port and serves in the background.
// Returns the bound port, useful with port 0.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("devtools listen: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/instance-tree", s.handleInstanceTree)
	r.Get("/healthz", s.handleHealth)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{Handler: r}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.rt.Logger().Error("devtools server", "err", err)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop shuts the inspector down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleInstanceTree(w http.ResponseWriter, r *http.Request) {
	snap := s.rt.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if snap == nil {
		w.WriteHeader(http.StatusGone)
		w.Write([]byte(`{"error":"detached"}`))
		return
	}
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.rt.Logger().Error("devtools encode", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleLive streams instance-tree snapshots over a websocket until the
// client goes away or the runtime detaches.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(SnapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			snap := s.rt.Snapshot()
			if snap == nil {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}
