package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/stationops/fleetwatch/pkg/engine"
	"github.com/stationops/fleetwatch/pkg/storage"
)

// Server exposes the alert feed and supporting reads to dashboard and
// display-board consumers.
type Server struct {
	engine  *engine.Engine
	storage storage.Storage
	mux     *http.ServeMux
	logger  *slog.Logger
}

// NewServer creates an API server.
func NewServer(e *engine.Engine, store storage.Storage, logger *slog.Logger) *Server {
	s := &Server{
		engine:  e,
		storage: store,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/alerts", s.handleAlerts)
	s.mux.HandleFunc("GET /api/v1/costs", s.handleCosts)
	s.mux.HandleFunc("GET /api/v1/schedules", s.handleSchedules)
	s.mux.HandleFunc("GET /api/v1/stock", s.handleStock)
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	feed, err := s.engine.GetAlertFeed(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("compute alert feed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feed)
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	proj, err := s.engine.ProjectedCost(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("project costs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(proj)
}

func (s *Server) handleSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	schedules, err := s.storage.ListActiveSchedules(ctx)
	if err != nil {
		s.logger.Error("list schedules", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	levels, err := s.storage.ListStockLevels(ctx)
	if err != nil {
		s.logger.Error("list stock levels", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(levels)
}
