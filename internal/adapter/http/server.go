package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quakemap-service/internal/observability"
	"github.com/couchcryptid/quakemap-service/internal/presenter"
)

// ViewSource supplies the presented map view. Current returns nil until a
// view exists.
type ViewSource interface {
	sharedobs.ReadinessChecker
	Current() *presenter.ViewHandle
}

// Server exposes the map page, the GeoJSON export, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	views      ViewSource
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /, /quakes.geojson, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, views ViewSource, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:   views,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /quakes.geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(views))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	view := s.views.Current()
	if view == nil {
		http.Error(w, "map not ready", http.StatusServiceUnavailable)
		return
	}

	// Render into a buffer so a template failure can still produce a 500.
	var buf bytes.Buffer
	if err := presenter.Render(&buf, view); err != nil {
		s.logger.Error("render map page failed", "error", err, "view_id", view.ID.String())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("write map page failed", "error", err)
		return
	}
	s.metrics.PageRenders.Inc()
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	view := s.views.Current()
	if view == nil {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "map not ready"})
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(presenter.NewFeatureCollection(view.Overlay.Points)) //nolint:errcheck // client gone
}
