// Package server exposes the collection engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zonemon/agent/internal/engine"
	"github.com/zonemon/agent/internal/errdefs"
	"github.com/zonemon/agent/internal/telemetry"
	"github.com/zonemon/agent/internal/version"
)

// MetricsGetter is the engine surface the server consumes.
type MetricsGetter interface {
	GetMetrics(ctx context.Context, target string) (string, error)
}

// Server is the zonemon HTTP server.
type Server struct {
	httpServer *http.Server
	engine     MetricsGetter
	metrics    *telemetry.Metrics
	logger     *zap.Logger
	mux        *http.ServeMux
}

// New creates a new Server instance.
func New(addr string, eng MetricsGetter, metrics *telemetry.Metrics, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:  eng,
		metrics: metrics,
		logger:  logger,
		mux:     mux,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /v1/gz/metrics", s.handleHostMetrics)
	s.mux.HandleFunc("GET /v1/{zone}/metrics", s.handleZoneMetrics)
	s.mux.HandleFunc("GET /v1/health", s.handleHealth)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHostMetrics(w http.ResponseWriter, r *http.Request) {
	s.serveMetrics(w, r, engine.HostTarget, "host")
}

func (s *Server) handleZoneMetrics(w http.ResponseWriter, r *http.Request) {
	zone := r.PathValue("zone")
	if zone == "" || zone == "gz" {
		BadRequest(w, "missing zone identifier", r.URL.Path)
		return
	}
	s.serveMetrics(w, r, zone, "zone")
}

func (s *Server) serveMetrics(w http.ResponseWriter, r *http.Request, target, kind string) {
	start := time.Now()
	text, err := s.engine.GetMetrics(r.Context(), target)
	elapsed := time.Since(start)

	switch {
	case errdefs.IsNotFound(err):
		s.observe(kind, telemetry.OutcomeNotFound, elapsed)
		NotFound(w, err.Error(), r.URL.Path)
		return
	case errors.Is(err, errdefs.ErrStopped):
		s.observe(kind, telemetry.OutcomeError, elapsed)
		Unavailable(w, "agent is shutting down", r.URL.Path)
		return
	case err != nil:
		s.observe(kind, telemetry.OutcomeError, elapsed)
		s.logger.Error("scrape failed", zap.String("target", target), zap.Error(err))
		InternalError(w, "collection failed", r.URL.Path)
		return
	}

	s.observe(kind, telemetry.OutcomeOK, elapsed)
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = w.Write([]byte(text))
}

func (s *Server) observe(kind, outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveScrape(kind, outcome, elapsed)
	}
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Zonemon-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "zonemon",
		"version": version.Map(),
	})
}
