// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"trendpulse/internal/config"
	"trendpulse/internal/logging"
	"trendpulse/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	contact string,
	trendService handlers.TrendService,
	logger zerolog.Logger,
) *Server {
	router := NewRouter(cfg, contact, trendService, logger)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// NewRouter builds the route tree
func NewRouter(
	cfg config.ServerConfig,
	contact string,
	trendService handlers.TrendService,
	logger zerolog.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.AccessLog(logger))
	router.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(trendService, contact, logger)
	pageHandler := handlers.NewPageHandler(trendService, logger)

	// Dashboard
	router.Get("/", pageHandler.Dashboard)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// CORS configuration
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CorsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", handlers.APIKeyHeader},
			MaxAge:         300,
		}))

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Get("/trends", trendHandler.GetTrends)

		// API explorer
		r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/api/docs/index.html", http.StatusMovedPermanently)
		})
		r.Get("/docs/openapi.json", handlers.OpenAPI)
		r.Get("/docs/*", handlers.SwaggerUI())
	})

	return router
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
