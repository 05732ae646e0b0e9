// Package api provides the HTTP server for screenlog.
// It exposes the library, watch history, and the achievement engine
// over a small JSON API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/screenlog/screenlog/internal/health"
	"github.com/screenlog/screenlog/internal/infra/sqlite"
)

// Version is reported by /api/version. Overridden at build time.
var Version = "0.1.0"

// Server is the screenlog HTTP API server.
type Server struct {
	db             *sqlite.DB
	health         *health.Checker
	metricsEnabled bool
	now            func() time.Time
}

// NewServer creates a new API server over the given store.
func NewServer(db *sqlite.DB) *Server {
	return &Server{db: db, now: time.Now}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker for /health reporting.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetClock overrides the server clock. Tests pin this so streak and
// time-bucket output is deterministic.
func (s *Server) SetClock(now func() time.Time) { s.now = now }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "screenlog is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/achievements", s.handleAchievements)
		r.Get("/achievements/{id}/contributions", s.handleContributions)
		r.Get("/stats", s.handleStats)
		r.Get("/streak", s.handleStreak)

		r.Get("/media", s.handleListMedia)
		r.Post("/media", s.handlePutMedia)
		r.Delete("/media/{id}", s.handleDeleteMedia)

		r.Get("/history", s.handleListHistory)
		r.Post("/history", s.handleLogWatch)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"healthy": s.health.IsHealthy(),
		"checks":  s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
