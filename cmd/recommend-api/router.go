// Package main provides the API router setup.
package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recserve/recommend-engine/cmd/recommend-api/handlers"
	"github.com/recserve/recommend-engine/cmd/recommend-api/middleware"
	"github.com/recserve/recommend-engine/internal/api/rpc"
	"github.com/recserve/recommend-engine/internal/config"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, recommender *recommend.Recommender, sessions *recommend.SessionManager) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"recommend-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		domains := recommender.Domains()
		if len(domains) == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready","detail":"no catalogs loaded"}`))
			return
		}
		fmt.Fprintf(w, `{"status":"ready","domains":%d,"sessions":%d}`, len(domains), sessions.Len())
	})

	// Initialize handlers
	recommendHandler := handlers.NewRecommendHandler(logger, recommender, sessions)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/domains", recommendHandler.Domains)
		r.Post("/recommendations", recommendHandler.Recommend)
	})

	// Connect RPC routes share the recommender and session state with the
	// JSON API.
	rpcService := rpc.NewRecommendService(logger, recommender, sessions)
	for path, handler := range rpcService.Handlers() {
		r.Handle(path, handler)
	}

	return r
}
