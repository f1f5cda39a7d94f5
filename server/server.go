// Package server provides HTTP server management and lifecycle handling for the medinfo API.
// It includes server setup, middleware configuration, route management, and graceful shutdown
// capabilities with proper error handling and logging.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medinfo/medinfo-api/config"
	"github.com/medinfo/medinfo-api/handlers"
	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.Handler
	config  *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, h *handlers.Handler) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: h,
		config:  cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(metrics.Metrics)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Pipeline routes
	s.router.Post("/search", s.handler.Search)
	s.router.Post("/price-comparison", s.handler.PriceComparison)
	s.router.Post("/alternative-medicine-price", s.handler.AlternativeMedicine)
	s.router.Post("/ai-assistant", s.handler.Assistant)

	// Kendra directory
	s.router.Get("/jan-aushadhi-kendras", s.handler.ListKendras)
	s.router.Post("/jan-aushadhi-kendras", s.handler.NearestKendras)

	// Local catalog
	s.router.Get("/medicines/search", s.handler.SearchCatalog)
	s.router.Get("/medicines/generic", s.handler.FindGeneric)
	s.router.Get("/essentials", s.handler.EssentialCategories)
	s.router.Get("/essentials/{category}", s.handler.EssentialsByCategory)
	s.router.Get("/blog", s.handler.BlogPosts)
	s.router.Post("/blog", s.handler.CreateBlogPost)

	// Accounts
	s.router.Post("/users/register", s.handler.RegisterUser)
	s.router.Post("/users/login", s.handler.LoginUser)
	s.router.Post("/users/save", s.handler.SaveMedicine)
	s.router.Get("/users/saved/{username}", s.handler.SavedMedicines)

	// Operational
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logging.Error("Failed to encode JSON response", "error", err)
		}
	}
}
