package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the slice of the bridge the inspector reports on.
type Status interface {
	Running() bool
	PendingCommands() int
}

// Server serves the debug endpoints:
//
//	GET /healthz        liveness
//	GET /metrics        Prometheus exposition
//	GET /debug/state    bridge status as JSON
//	GET /debug/recent   retained traffic records as JSON
//	GET /debug/tap      WebSocket stream of live traffic records
type Server struct {
	tap      *Tap
	status   Status
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithGatherer sets the metrics gatherer. Default: prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithServerLogger sets the structured logger. Default: slog.Default().
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds an inspector over tap and status.
func NewServer(tap *Tap, status Status, opts ...ServerOption) *Server {
	s := &Server{
		tap:      tap,
		status:   status,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default().With("component", "inspect"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type stateResponse struct {
	Running         bool `json:"running"`
	PendingCommands int  `json:"pending_commands"`
	TapClients      int  `json:"tap_clients"`
	RecordsRetained int  `json:"records_retained"`
}

// Handler returns the routed debug surface for mounting in an http.Server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/debug/state", s.handleState)
	r.Get("/debug/recent", s.handleRecent)
	r.Get("/debug/tap", s.tap.HandleWebSocket)

	return r
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	state := stateResponse{
		TapClients:      s.tap.ClientCount(),
		RecordsRetained: len(s.tap.Recent()),
	}
	if s.status != nil {
		state.Running = s.status.Running()
		state.PendingCommands = s.status.PendingCommands()
	}
	writeJSON(w, state)
}

func (s *Server) handleRecent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.tap.Recent())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves the debug surface on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("inspector listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.tap.Close()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
